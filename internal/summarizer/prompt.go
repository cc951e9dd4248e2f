package summarizer

import "strings"

const (
	promptInstructions = `Summarize the following Coursera transcript into a neat, concise handout suitable for revision.
Organize the information logically with clear headings and concise paragraphs or standard bullet points.
Focus on key concepts, important definitions, procedures, and significant points.
Do not use specific labels like 'Key Takeaway:', 'Example:', 'Tip:', or 'Note:'.
Ensure the summary is easy to read and understand for a revision purpose.
Only return the clean, summarized content. Do not repeat this prompt or add extra instructions or conversational text.`

	transcriptFence = `"""`
)

// BuildPrompt embeds the transcript unmodified between triple-quote fences
// after the fixed instructions.
func BuildPrompt(transcript string) string {
	var b strings.Builder
	b.Grow(len(promptInstructions) + len(transcript) + 2*len(transcriptFence) + 4)

	b.WriteString(promptInstructions)
	b.WriteString("\n\n")
	b.WriteString(transcriptFence)
	b.WriteString("\n")
	b.WriteString(transcript)
	b.WriteString("\n")
	b.WriteString(transcriptFence)

	return b.String()
}
