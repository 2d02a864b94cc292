package tuning

import "strings"

// buildClassifyPrompt is the fixed instruction used to label a template's
// task type. The model must answer with the type alone.
func buildClassifyPrompt(tmpl string) string {
	var b strings.Builder
	b.WriteString("Analyze the following prompt template and label its task type in less than 3 words")
	b.WriteString(" (e.g., summarization, classification, extraction, translation, story generation).\n")
	b.WriteString("Output ONLY the type, no explanation or extra text.\n")
	b.WriteString("PROMPT TEMPLATE:\n")
	b.WriteString(tmpl)
	b.WriteString("\n")
	return b.String()
}

// buildRevisionPrompt asks the model to rewrite a template so it addresses
// the reported problems. The summary, when present, carries preferences
// learned from earlier sessions of the same task type.
func buildRevisionPrompt(current, feedback, summary string) string {
	var b strings.Builder
	b.WriteString("You are a prompt engineering assistant. Revise the following prompt template to address the user's reported problems.\n")
	b.WriteString("Do not simply repeat the original prompt.\n")
	b.WriteString("CURRENT PROMPT:\n")
	b.WriteString(current)
	b.WriteString("\nEND OF CURRENT PROMPT.\n\n")
	b.WriteString("PROBLEMS:\n")
	b.WriteString(feedback)
	if summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
	}
	b.WriteString("\nEND OF PROBLEMS.\n\n")
	b.WriteString("Output ONLY the revised prompt template, keeping {name} placeholders for variables.\n")
	b.WriteString("Do not add any greeting, explanation, suggestions or extra text.\n")
	b.WriteString("No code fences.\n")
	return b.String()
}

// buildMergeSummaryPrompt folds this session's feedback into an existing
// rolling summary for the task type.
func buildMergeSummaryPrompt(taskType, prev string, feedbacks []string) string {
	var b strings.Builder
	b.WriteString("Summarize the following feedbacks and previous summary for prompt type '")
	b.WriteString(taskType)
	b.WriteString("' into a concise summary for future improvements:\n")
	b.WriteString("PREVIOUS SUMMARY:\n")
	b.WriteString(prev)
	b.WriteString("\nEND OF PREVIOUS SUMMARY.\n")
	b.WriteString("FEEDBACKS:\n")
	b.WriteString(strings.Join(feedbacks, "\n"))
	b.WriteString("\nEND OF FEEDBACKS.\n")
	b.WriteString("No greetings or extra text, just the summary.\n")
	return b.String()
}

// buildFreshSummaryPrompt summarizes session feedback when no prior summary
// exists for the task type.
func buildFreshSummaryPrompt(taskType string, feedbacks []string) string {
	var b strings.Builder
	b.WriteString("Summarize the following problems for prompt type '")
	b.WriteString(taskType)
	b.WriteString("' into a very concise summary for future improvements.\n")
	b.WriteString("PROBLEMS:\n")
	b.WriteString(strings.Join(feedbacks, "\n"))
	b.WriteString("\nEND OF PROBLEMS.\n")
	b.WriteString("No greetings or extra text, just the summary.\n")
	return b.String()
}
