package ingest

import (
	"regexp"
	"strings"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// Classifier tags comments that look like spam or bot output. Tags are
// advisory: a flagged comment stays in the pipeline so downstream consumers
// can decide how to weigh it.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

var spamTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`click here`),
	regexp.MustCompile(`subscribe.{0,20}channel`),
	regexp.MustCompile(`check.{0,10}bio`),
	regexp.MustCompile(`dm.{0,10}me`),
	regexp.MustCompile(`whatsapp.{0,10}\+?\d+`),
	regexp.MustCompile(`telegram.{0,10}@`),
	regexp.MustCompile(`👆.{0,20}👆`),
	regexp.MustCompile(`free.{0,20}money`),
	regexp.MustCompile(`earn.{0,20}₹`),
}

var (
	trailingDigitsRe = regexp.MustCompile(`\d{4,}$`)

	botAuthorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z]+\d{4,}$`),
		regexp.MustCompile(`(?i)^User\d+$`),
		regexp.MustCompile(`(?i)bot|spam|fake`),
	}
)

// IsSpam checks the raw record (pre-cleaning) against solicitation and
// contact-request patterns, plus bot-like author names.
func (c *Classifier) IsSpam(raw models.RawComment) bool {
	text := strings.ToLower(raw.Text)
	author := strings.ToLower(raw.Author)

	for _, pattern := range spamTextPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	if trailingDigitsRe.MatchString(author) || len(author) < 3 {
		return true
	}
	return false
}

// IsBot flags author names shaped like generated accounts.
func (c *Classifier) IsBot(raw models.RawComment) bool {
	for _, pattern := range botAuthorPatterns {
		if pattern.MatchString(raw.Author) {
			return true
		}
	}
	return false
}
