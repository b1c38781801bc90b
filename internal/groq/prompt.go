package groq

import "fmt"

// promptTemplate is the instruction contract sent to the model. The exact
// wording matters for the output distribution in JSON mode; change it with
// care.
const promptTemplate = `You are a specialized JSON quiz generator and an expert professor.
Analyze the lecture notes provided below and create exactly %d multiple-choice questions.

STRICT RULES:
- Return ONLY a raw JSON object, no markdown, no commentary.
- The object has exactly two keys: "summary" and "questions".
- "summary" is a 3-4 sentence high-level summary of the notes.
- "questions" is an array of objects with keys "question_text",
  "question_type", "options", "correct_answer" and optionally "explanation".
- "question_type" is always "CBT".
- "options" contains exactly 4 distinct strings.
- "correct_answer" must match one of the options exactly, character for character.

NOTES:
%s`

// BuildPrompt renders the instruction string for the given content and
// question count. Pure string construction, no I/O.
func BuildPrompt(content string, count int) string {
	return fmt.Sprintf(promptTemplate, count, content)
}
