package forms

import (
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

// QuickItemForm is the title-only form of the bucket page.
type QuickItemForm struct {
	Title  string
	Errors Errors
}

// QuickItemFromValues decodes a quick-create submission.
func QuickItemFromValues(values url.Values) QuickItemForm {
	return QuickItemForm{Title: values.Get("title"), Errors: Errors{}}
}

// Validate checks the title.
func (f *QuickItemForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	validateItemTitle(f.Title, f.Errors)
	return !f.Errors.Any()
}

// ItemForm backs the create and update item pages.
type ItemForm struct {
	Title       string
	Description string
	DueDate     string // raw input, YYYY-MM-DD or empty
	Flagged     bool
	Errors      Errors

	due *time.Time
}

// ItemFromValues decodes a submitted item form.
func ItemFromValues(values url.Values) ItemForm {
	return ItemForm{
		Title:       values.Get("title"),
		Description: values.Get("description"),
		DueDate:     values.Get("due_date"),
		Flagged:     parseBool(values, "flagged"),
		Errors:      Errors{},
	}
}

// ItemFromEntity pre-fills the form from an existing item.
func ItemFromEntity(item *domain.Item) ItemForm {
	return ItemForm{
		Title:       item.Title,
		Description: item.DescriptionText(),
		DueDate:     domain.FormatDate(item.DueDate),
		Flagged:     item.Flagged,
		Errors:      Errors{},
	}
}

// Validate checks every field. Create and update share the same rules.
func (f *ItemForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	validateItemTitle(f.Title, f.Errors)

	f.due = nil
	if raw := strings.TrimSpace(f.DueDate); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			f.Errors.Add("due_date", MsgInvalidDate)
		} else {
			f.due = &d
		}
	}

	return !f.Errors.Any()
}

// Apply copies the validated fields onto item, normalizing the description.
func (f *ItemForm) Apply(item *domain.Item) {
	item.Title = f.Title
	item.Description = domain.NormalizeDescription(f.Description)
	item.DueDate = f.due
	item.Flagged = f.Flagged
}

func validateItemTitle(title string, errs Errors) {
	if !required(title) {
		errs.Add("title", MsgTitleRequired)
		return
	}
	if !maxLength(title, domain.ItemTitleMaxLen) {
		errs.Add("title", MsgMaxLength(domain.ItemTitleMaxLen))
	}
}
