package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// ApplyLink builds the mailto link an applicant uses to reply to a listing.
func ApplyLink(l Listing, applicantEmail string) string {
	domain := nonAlnum.ReplaceAllString(strings.ToLower(l.Company), "")
	subject := fmt.Sprintf("Application for %s position", l.Title)
	body := fmt.Sprintf(`Hello %s team,

I am interested in applying for the %s position that I found on your job board.

I would like to learn more about this opportunity and discuss how my skills and experience align with your requirements.

Looking forward to hearing from you.

Best regards,
%s`, l.Company, l.Title, applicantEmail)

	return fmt.Sprintf("mailto:jobs@%s.com?subject=%s&body=%s", domain, mailtoEscape(subject), mailtoEscape(body))
}

func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
