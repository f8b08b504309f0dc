package suggest

import (
	"fmt"
	"strings"
)

const SystemPrompt = `You are a travel planning assistant. You MUST follow the exact formatting specified in the prompt. Do not deviate from the format or add any extra sections. Each response should be consistently structured for easy parsing.`

const formatSpec = `Format your response EXACTLY as follows for EACH day:

### Day 1: [Day Title]

# Must-Visit Attractions and Landmarks
- [Attraction 1]: [Brief description]
- [Attraction 2]: [Brief description]
- [Attraction 3]: [Brief description]

# Local Food and Restaurants
- [Restaurant/Food 1]: [Brief description]
- [Restaurant/Food 2]: [Brief description]
- [Restaurant/Food 3]: [Brief description]

# Cultural Experiences and Activities
- [Activity 1]: [Brief description]
- [Activity 2]: [Brief description]
- [Activity 3]: [Brief description]

After all days, include these sections:

# Best Areas to Stay
- [Area 1]: [Brief description]
- [Area 2]: [Brief description]

# Transportation Tips
- [Tip 1]: [Brief description]
- [Tip 2]: [Brief description]

IMPORTANT FORMATTING RULES:
1. Use ### for day headers (e.g., ### Day 1: Downtown Exploration)
2. Use # for section headers (exactly as shown above)
3. Use - for list items
4. Keep descriptions concise and clear
5. Do not use any other markdown formatting
6. Maintain consistent spacing
7. Include all sections for each day`

// BuildPrompt creates the user prompt for a trip.
func BuildPrompt(req TripRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a detailed %d-day travel itinerary for %s.\n", req.Days(), req.Destination))
	if req.Preferences != "" {
		sb.WriteString(fmt.Sprintf("Consider these preferences: %s\n", req.Preferences))
	}
	sb.WriteString(formatSpec)
	return sb.String()
}
