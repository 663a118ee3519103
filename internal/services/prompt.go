package services

import (
	"fmt"

	"alfredoptarigan/profile-screener/internal/speech"
)

// noSpeechMarker is what the model is asked to answer when nothing intelligible was said.
const noSpeechMarker = "NO_SPEECH"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildOCRPrompt asks for a verbatim transcription of a scanned resume.
func (pb *PromptBuilder) BuildOCRPrompt() string {
	return `You are an OCR engine. Transcribe all text visible in the attached resume image.

Rules:
- Output only the text, exactly as written, with one line per visual line.
- Keep the original order from top to bottom.
- Do not summarize, translate, correct or add anything.
- Do not wrap the output in markdown or code fences.
- If the image contains no readable text, output nothing.`
}

// BuildTranscriptionPrompt asks for a verbatim transcript of a spoken answer.
func (pb *PromptBuilder) BuildTranscriptionPrompt(lang speech.Language) string {
	return fmt.Sprintf(`Transcribe the attached audio recording. The speaker is answering a job registration form and is speaking %s (%s).

Rules:
- Output only the words that were spoken, in the script of the spoken language.
- Write numbers, email addresses and names exactly as pronounced.
- Do not translate, summarize or add commentary.
- If no intelligible speech is present, output exactly %s.`, lang.Name, lang.Code, noSpeechMarker)
}
