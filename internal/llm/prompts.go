package llm

// TabooPrompt asks for one random Turkish word with the forbidden words a
// narrator must avoid while describing it. The one-shot example pins the
// JSON shape.
const TabooPrompt = `Generate a random Turkish word. The word must NOT always come from the same category. ` +
	`Choose words from diverse topics such as technology, emotions, culture, history, biology, ` +
	`abstract concepts, geography, philosophy, slang, and daily life. ` +
	`The word should be neither too easy nor always extremely difficult - mix the difficulty levels occasionally. ` +
	`Avoid repetition of similar words or word types over time. ` +
	`After generating the word, provide a list of forbidden words that are semantically related to the ` +
	`generated word but are NOT allowed to be used while describing or explaining it in a Taboo game. ` +
	`The forbidden words should be related to the meaning of the word but should not directly describe the word itself. ` +
	`Do not ask for topic or input - it's all up to you.

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

Example response:
{"turkishWord": "gökkuşağı", "forbiddenWords": ["renkler", "yağmur", "ışık", "güneş", "atmosfer"]}`
