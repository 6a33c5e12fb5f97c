package prompt

import (
    "encoding/json"
    "fmt"

    "github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// GetSystemPrompt sets the tone and shape of the breach summary.
func GetSystemPrompt() string {
    return `You are a security analyst writing for a non-technical account owner. You receive the list of known data breaches that include their account, as JSON from the HaveIBeenPwned API.

Requirements:
- Write plain text only (no markdown, no code fences, no JSON).
- Start with one sentence stating how many breaches were found and the most severe one.
- Then explain which kinds of data were exposed, grouping similar data classes.
- Finish with concrete next steps: password changes, enabling 2FA, watching for phishing.
- Keep it under 250 words. Do not invent breaches that are not in the input.`
}

// GetUserPrompt embeds the account and the JSON serialization of its breaches.
func GetUserPrompt(account string, breaches []breach.Breach) (string, error) {
    b, err := json.MarshalIndent(breaches, "", "  ")
    if err != nil {
        return "", fmt.Errorf("failed to marshal breaches: %w", err)
    }
    return fmt.Sprintf("Summarize the breaches for account %q.\n\nBreaches:\n%s", account, string(b)), nil
}
