package forms

import (
	"net/url"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

// TitleChecker reports whether candidate is free, ignoring the bucket with
// id excludingID (0 ignores nothing).
type TitleChecker func(candidate string, excludingID uint) (bool, error)

// BucketForm backs the create and update bucket pages.
type BucketForm struct {
	Title       string
	Description string
	Errors      Errors
}

// BucketFromValues decodes a submitted bucket form.
func BucketFromValues(values url.Values) BucketForm {
	return BucketForm{
		Title:       values.Get("title"),
		Description: values.Get("description"),
		Errors:      Errors{},
	}
}

// BucketFromEntity pre-fills the form from an existing bucket.
func BucketFromEntity(b *domain.Bucket) BucketForm {
	return BucketForm{
		Title:       b.Title,
		Description: b.Description,
		Errors:      Errors{},
	}
}

// Validate checks every field. In Update mode the uniqueness check ignores
// the bucket being edited, so saving an unchanged title is accepted.
// The returned error is a lookup failure from isUnique, never a validation
// failure: those land in f.Errors.
func (f *BucketForm) Validate(mode Mode, bucketID uint, isUnique TitleChecker) (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	if err := f.validateTitle(mode, bucketID, isUnique); err != nil {
		return false, err
	}
	if !required(f.Description) {
		f.Errors.Add("description", MsgDescriptionRequired)
	}

	return !f.Errors.Any(), nil
}

func (f *BucketForm) validateTitle(mode Mode, bucketID uint, isUnique TitleChecker) error {
	if !required(f.Title) {
		f.Errors.Add("title", MsgTitleRequired)
		return nil
	}
	if !maxLength(f.Title, domain.BucketTitleMaxLen) {
		f.Errors.Add("title", MsgMaxLength(domain.BucketTitleMaxLen))
	}

	var excluding uint
	if mode == Update {
		excluding = bucketID
	}
	unique, err := isUnique(f.Title, excluding)
	if err != nil {
		return err
	}
	if !unique {
		f.Errors.Add("title", MsgTitleNotUnique)
	}
	return nil
}

// Apply copies the validated fields onto b.
func (f *BucketForm) Apply(b *domain.Bucket) {
	b.Title = f.Title
	b.Description = f.Description
}
