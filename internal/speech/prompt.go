package speech

import (
	"fmt"
	"strings"
)

// Field is a registration form field that can be filled by voice.
type Field string

const (
	FieldName      Field = "name"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"
	FieldGender    Field = "gender"
	FieldEducation Field = "education"
	FieldSkills    Field = "skills"
	FieldLocation  Field = "location"
)

var Fields = []Field{FieldName, FieldPhone, FieldEmail, FieldGender, FieldEducation, FieldSkills, FieldLocation}

func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

var prompts = map[Field]map[string]string{
	FieldName: {
		English.Code: "Please say your full name",
		Hindi.Code:   "कृपया अपना पूरा नाम बोलें",
		Telugu.Code:  "దయచేసి మీ పూర్తి పేరు చెప్పండి",
	},
	FieldPhone: {
		English.Code: "Please say your 10-digit phone number",
		Hindi.Code:   "कृपया अपना 10 अंकों का फोन नंबर बोलें",
		Telugu.Code:  "దయచేసి మీ 10 అంకెల ఫోన్ నంబర్ చెప్పండి",
	},
	FieldEmail: {
		English.Code: "Please say your email address",
		Hindi.Code:   "कृपया अपना ईमेल पता बोलें",
		Telugu.Code:  "దయచేసి మీ ఈమెయిల్ చిరునామా చెప్పండి",
	},
	FieldGender: {
		English.Code: "Please say your gender: Male, Female, or Other",
		Hindi.Code:   "कृपया अपना लिंग बोलें: पुरुष, महिला, या अन्य",
		Telugu.Code:  "దయచేసి మీ లింగం చెప్పండి: పురుషుడు, స్త్రీ, లేదా ఇతర",
	},
	FieldEducation: {
		English.Code: "Please say your highest education qualification",
		Hindi.Code:   "कृपया अपनी उच्चतम शिक्षा योग्यता बोलें",
		Telugu.Code:  "దయచేసి మీ అత్యున్నత విద్యార్హత చెప్పండి",
	},
	FieldSkills: {
		English.Code: "Please say your skills, separated by commas",
		Hindi.Code:   "कृपया अपने कौशल बोलें, अल्पविराम से अलग करें",
		Telugu.Code:  "దయచేసి మీ నైపుణ్యాలు చెప్పండి, కామాలతో వేరు చేయండి",
	},
	FieldLocation: {
		English.Code: "Please say your preferred job location",
		Hindi.Code:   "कृपया अपना पसंदीदा नौकरी स्थान बोलें",
		Telugu.Code:  "దయచేసి మీ ఇష్టపడే ఉద్యోగ ప్రదేశం చెప్పండి",
	},
}

// Prompt returns the spoken instruction for field in lang.
func Prompt(field Field, lang Language) string {
	if p, ok := prompts[field][lang.Code]; ok {
		return p
	}
	return fmt.Sprintf("Please say your %s", field)
}
