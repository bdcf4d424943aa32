package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ruzzidanali/smashit/models"

	"gorm.io/gorm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends.
// Returns "" when nothing survives (a name made only of symbols).
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueBusinessSlug derives an unused slug from the chosen business
// name by probing base, base-2, base-3, ... until one is free. Under
// heavy concurrent registration of identical names the loop could race
// and lose to the unique index; at this scale the registration simply
// fails and the owner retries.
func UniqueBusinessSlug(db *gorm.DB, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "business"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&models.Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
