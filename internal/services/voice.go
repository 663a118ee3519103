package services

import (
	"context"
	"strings"

	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/speech"
)

// VoiceService fills single form fields from spoken answers.
type VoiceService interface {
	TranscribeField(ctx context.Context, field speech.Field, audio []byte, mimeType string, lang speech.Language) (*models.VoiceFieldResponse, error)
	Prompt(field speech.Field, lang speech.Language) string
}

type voiceService struct {
	acquirer Acquirer
	skills   *extractor.Matcher
}

func NewVoiceService(acquirer Acquirer, skills *extractor.Matcher) VoiceService {
	return &voiceService{
		acquirer: acquirer,
		skills:   skills,
	}
}

// TranscribeField implements VoiceService. Failures to hear anything come
// back as an *AcquisitionError.
func (v *voiceService) TranscribeField(ctx context.Context, field speech.Field, audio []byte, mimeType string, lang speech.Language) (*models.VoiceFieldResponse, error) {
	raw, err := v.acquirer.Acquire(ctx, models.SourceVoice, audio, mimeType, lang)
	if err != nil {
		return nil, err
	}

	transcript := strings.Join(strings.Fields(raw.Text), " ")
	return &models.VoiceFieldResponse{
		Field:      string(field),
		Language:   lang.Code,
		Transcript: transcript,
		Value:      v.fieldValue(field, transcript),
	}, nil
}

func (v *voiceService) Prompt(field speech.Field, lang speech.Language) string {
	return speech.Prompt(field, lang)
}

// fieldValue post-processes a transcript into the value the form expects.
// Values that cannot be recognized come back as nil.
func (v *voiceService) fieldValue(field speech.Field, transcript string) any {
	switch field {
	case speech.FieldName:
		return nilIfEmpty(speech.Name(transcript))
	case speech.FieldPhone:
		return nilIfEmpty(speech.Phone(transcript))
	case speech.FieldEmail:
		return nilIfEmpty(speech.Email(transcript))
	case speech.FieldGender:
		return nilIfEmpty(speech.Gender(transcript))
	case speech.FieldEducation:
		if level, ok := speech.Education(transcript); ok {
			return level
		}
		return nil
	case speech.FieldSkills:
		return v.canonicalSkills(speech.Skills(transcript))
	case speech.FieldLocation:
		if locations := extractor.ExtractLocations(transcript); len(locations) > 0 {
			return locations
		}
		return nilIfEmpty(extractor.TitleCase(transcript))
	default:
		return nil
	}
}

// canonicalSkills swaps spoken skills for their vocabulary spelling and keeps
// the rest as said.
func (v *voiceService) canonicalSkills(spoken []string) []string {
	out := make([]string, 0, len(spoken))
	seen := map[string]bool{}
	for _, s := range spoken {
		if canon, ok := v.skills.Canonical(s); ok {
			s = canon
		}
		if key := strings.ToLower(s); !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
