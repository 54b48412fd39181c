package game

import (
	"fmt"
	"strings"
	"time"
)

// Player-facing texts. The bot speaks Turkish, as does the word generator.

func msgJoinPrompt(window string) string {
	return fmt.Sprintf("🎮 Oyun başlatıldı! Katılmak için aşağıdaki 'Katılıyorum' butonuna basın! (%s süreniz var)", window)
}

func msgAlreadyActive() string {
	return "⚠️ Bu sohbette zaten aktif bir oyun var. Önce /bitir ile bitirin."
}

func msgJoined(name string) string {
	return fmt.Sprintf("🧑‍💼 %s oyuna katıldı.", name)
}

func msgCancelled() string {
	return "❌ Oyun iptal edildi."
}

func msgNotEnoughPlayers() string {
	return "❌ Yeterli oyuncu yok. Oyun iptal edildi."
}

func msgRoster(names []string, narrator string) string {
	return fmt.Sprintf("✅ Katılanlar: %s\n\n🎙️ Anlatıcı: %s", strings.Join(names, ", "), narrator)
}

func msgPlayStarted(narrator string) string {
	return fmt.Sprintf("🎲 Oyun başladı!\n\n📝 Anlatıcı (%s) tabu kelimeyi anlatmaya başlayacak.\n"+
		"⚠️ Yasaklı kelimeleri kullanmak yasaktır! Kullanıldığında -1 puan alınır.", narrator)
}

func msgNarratorPrompt() string {
	return "📝 Anlatıcı, kelimeyi ve yasaklı kelimeleri görmek veya kelimeyi değiştirmek için butonlara tıklayabilirsiniz"
}

func msgViolation(narrator string, matched []string, newScore int) string {
	return fmt.Sprintf("🚫 @%s yasaklı kelime kullandı: *%s*\n➖ 1 puan ceza aldı!\n📊 Yeni puanı: %d",
		narrator, strings.Join(matched, ", "), newScore)
}

func msgNextNarrator(name string) string {
	return fmt.Sprintf("➡️ Sıradaki anlatıcı: @%s", name)
}

func msgCorrectGuess(guesser, narrator, word string) string {
	return fmt.Sprintf("🎉 @%s doğru tahmin etti! Kelime: *%s*\n\n➕ Tahmin eden (@%s): +1 puan\n➕ Anlatıcı (@%s): +1 puan",
		guesser, word, guesser, narrator)
}

func msgGuesserNotInRoster() string {
	return "⚠️ Oyuncu listesinde bulunamadınız, anlatıcı değişmiyor."
}

func msgStandings(standings []Standing) string {
	var b strings.Builder
	b.WriteString("🎯 Puanlar:\n")
	for i, s := range standings {
		fmt.Fprintf(&b, "%d. @%s: %d\n", i+1, s.Player.DisplayName(), s.Score)
	}
	return b.String()
}

func msgFinal(ranking []Standing, winners []Standing) string {
	var b strings.Builder
	b.WriteString("🏁 Oyun sona erdi!\n\n📊 Son Puanlar:\n")
	for i, s := range ranking {
		fmt.Fprintf(&b, "%d. @%s: %d\n", i+1, s.Player.DisplayName(), s.Score)
	}
	switch {
	case len(winners) == 1:
		fmt.Fprintf(&b, "\n🏆 Tebrikler @%s! Oyunu kazandın!", winners[0].Player.DisplayName())
	case len(winners) > 1:
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = "@" + w.Player.DisplayName()
		}
		fmt.Fprintf(&b, "\n🏆 Berabere! Kazananlar: %s", strings.Join(names, ", "))
	default:
		b.WriteString("\n😔 Kimse puan kazanamadı. Bir dahaki sefere!")
	}
	return b.String()
}

func msgReveal(challenge Challenge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔐 Anlatacağınız Kelime: %s\n\n⛔ Yasaklı Kelimeler:\n", challenge.Word)
	for i, w := range challenge.ForbiddenWords {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w)
	}
	b.WriteString("\n📢 Bu kelimeleri kullanmadan tabu kelimeyi anlatın!")
	return b.String()
}

func msgUnauthorizedButton() string {
	return "Bu buton sadece mevcut anlatıcı tarafından kullanılabilir."
}

func msgJoinAck() string {
	return "Oyuna katıldınız!"
}

func msgWordComing() string {
	return "Yeni bir kelime hazırlanıyor..."
}

func msgNotStarted() string {
	return "❌ Oyun henüz başlamadı."
}

func msgNarratorOnly() string {
	return "❌ Sadece sıradaki anlatıcı bu komutu kullanabilir."
}

func msgUsage() string {
	return "❓ Geçersiz komut. Komutlar: /kelimever, /tur, /puan, /bitir"
}

func msgStateBroken() string {
	return "⚠️ Oyun durumu hatalı. Yeni oyun başlatın."
}

func formatWindow(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d dakika", int(d/time.Minute))
	}
	return fmt.Sprintf("%d saniye", int(d/time.Second))
}
