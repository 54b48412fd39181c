package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractJSON extracts JSON from LLM response that may contain extra text
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	// Remove markdown code blocks if present
	response = regexp.MustCompile("(?s)```json\\s*").ReplaceAllString(response, "")
	response = regexp.MustCompile("(?s)```\\s*$").ReplaceAllString(response, "")
	response = strings.TrimSpace(response)

	// Find the first { and last }
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no valid JSON object found in response")
	}

	jsonStr := response[start : end+1]

	// Validate it's valid JSON
	var js json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &js); err != nil {
		return "", fmt.Errorf("extracted text is not valid JSON: %w", err)
	}

	return jsonStr, nil
}

func decodePair(raw string) (WordPair, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return WordPair{}, err
	}

	var pair WordPair
	if err := json.Unmarshal([]byte(jsonStr), &pair); err != nil {
		return WordPair{}, fmt.Errorf("failed to unmarshal word pair: %w", err)
	}

	return sanitize(pair)
}
