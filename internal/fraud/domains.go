package fraud

// disposableDomains are throwaway mailbox providers. Config.DisposableDomains
// extends this list at startup.
var disposableDomains = []string{
	"tempmail.com", "throwaway.email", "guerrillamail.com",
	"mailinator.com", "yopmail.com", "temp-mail.org",
	"fakeinbox.com", "sharklasers.com", "guerrillamail.info",
	"grr.la", "guerrillamail.de", "tmail.com", "tempail.com",
	"dispostable.com", "trashmail.com", "trashmail.me",
	"trashmail.net", "maildrop.cc", "mailnesia.com",
	"mailcatch.com", "tempr.email", "discard.email",
	"tempmailo.com", "mohmal.com", "burnermail.io",
	"temp-mail.io", "emailondeck.com", "mintemail.com",
	"getnada.com", "jetable.org", "throwawaymail.com",
	"10minutemail.com", "tempinbox.com", "spambox.us",
	"mytemp.email", "binkmail.com", "safetymail.info",
}

// knownFakePhones are placeholder numbers people type into forms.
var knownFakePhones = map[string]bool{
	"1234567890": true, "0987654321": true, "1111111111": true, "0000000000": true,
	"9876543210": true, "1234512345": true, "9999999999": true, "8888888888": true,
	"7777777777": true, "6666666666": true,
}

var sequentialNationalIDs = map[string]bool{
	"123456789012": true,
	"210987654321": true,
}

var placeholderNames = map[string]bool{
	"test": true, "testing": true, "asdf": true, "qwerty": true, "abc": true, "xyz": true,
	"name": true, "your name": true, "full name": true, "n/a": true, "na": true, "none": true,
	"null": true, "undefined": true, "admin": true, "user": true,
}
