package generate

import (
	"fmt"
	"time"
)

const promptTemplate = `Please generate the following information and respond in JSON format with the following structure:
{
    "title": "...",
    "description": "...",
    "agendaItems": [
        {
            "title": "...",
            "description": "...",
            "startTime": "...",
            "endTime": "...",
            "location": "..."
        },
        ...
    ],
}
Based on the following input: "%s".

### Instructions ###
- Result should be in medium length.
- startTime and endTime should be in the format of ISO 8601.
- In a day should have at least a few agendaItems (few activities).
- If there is no date or time mentioned, the current date and time is %s.
- Please make sure to not change the property name in JSON structure.
- If there is no location mentioned, use "Online" as the default location.
- Don't include any additional text or explanations, just return the JSON object.
`

// buildPrompt renders the structured-output instructions around the user's
// free-text input, anchoring relative dates to now.
func buildPrompt(input string, now time.Time) string {
	return fmt.Sprintf(promptTemplate, input, now.UTC().Format(time.RFC3339))
}
