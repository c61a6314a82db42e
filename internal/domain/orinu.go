package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the genre of a series.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryAction    Category = "action"
	CategoryAdventure Category = "adventure"
	CategoryMystical  Category = "mystical"
	CategoryRomance   Category = "romance"
	CategoryComedy    Category = "comedy"
	CategoryDrama     Category = "drama"
	CategoryFantasy   Category = "fantasy"
	CategoryScifi     Category = "scifi"
)

// CategoryInfo describes a category as shown to readers.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
}

// Categories lists the catalog categories in display order.
var Categories = []CategoryInfo{
	{ID: CategoryAction, Name: "Action", Color: "#FF6B35"},
	{ID: CategoryAdventure, Name: "Aventure", Color: "#F7931E"},
	{ID: CategoryMystical, Name: "Mystique", Color: "#8A5CD8"},
	{ID: CategoryRomance, Name: "Romance", Color: "#FF69B4"},
	{ID: CategoryComedy, Name: "Comédie", Color: "#FFD700"},
	{ID: CategoryDrama, Name: "Drame", Color: "#4A90E2"},
	{ID: CategoryFantasy, Name: "Fantastique", Color: "#9B59B6"},
	{ID: CategoryScifi, Name: "Science-Fiction", Color: "#3498DB"},
}

// ParseCategory accepts a known category id or "all". Empty input means "all".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	for _, info := range Categories {
		if info.ID == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
}

// PublishDay is the weekday a series publishes new chapters.
type PublishDay string

const (
	Monday    PublishDay = "monday"
	Tuesday   PublishDay = "tuesday"
	Wednesday PublishDay = "wednesday"
	Thursday  PublishDay = "thursday"
	Friday    PublishDay = "friday"
	Saturday  PublishDay = "saturday"
	Sunday    PublishDay = "sunday"
)

// DefaultPublishDay is the day selected when the weekly view opens.
const DefaultPublishDay = Monday

// WeekDay pairs a publish day with its label.
type WeekDay struct {
	ID    PublishDay `json:"id"`
	Label string     `json:"label"`
}

// WeekDays lists the publish days in calendar order.
var WeekDays = []WeekDay{
	{ID: Monday, Label: "Lundi"},
	{ID: Tuesday, Label: "Mardi"},
	{ID: Wednesday, Label: "Mercredi"},
	{ID: Thursday, Label: "Jeudi"},
	{ID: Friday, Label: "Vendredi"},
	{ID: Saturday, Label: "Samedi"},
	{ID: Sunday, Label: "Dimanche"},
}

// ParsePublishDay accepts a lower-case English weekday. Empty input returns an empty day.
func ParsePublishDay(s string) (PublishDay, error) {
	d := PublishDay(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return "", nil
	}
	for _, wd := range WeekDays {
		if wd.ID == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown publish day %q", ErrInvalidInput, s)
}

// Orinu is a series in the catalog.
type Orinu struct {
	ID          string     `yaml:"id" json:"id" validate:"required"`
	Title       string     `yaml:"title" json:"title" validate:"required"`
	Author      string     `yaml:"author" json:"author" validate:"required"`
	CoverImage  string     `yaml:"cover_image" json:"coverImage" validate:"required,url"`
	Category    Category   `yaml:"category" json:"category" validate:"required,orinu_category"`
	Views       int        `yaml:"views" json:"views" validate:"gte=0"`
	Likes       int        `yaml:"likes" json:"likes" validate:"gte=0"`
	Chapters    int        `yaml:"chapters" json:"chapters" validate:"gte=0"`
	Rating      float64    `yaml:"rating" json:"rating" validate:"gte=0,lte=5"`
	Description string     `yaml:"description" json:"description"`
	PublishDay  PublishDay `yaml:"publish_day,omitempty" json:"publishDay,omitempty" validate:"omitempty,publish_day"`
}

// SortKey orders catalog listings.
type SortKey string

const (
	SortNone   SortKey = ""
	SortViews  SortKey = "views"
	SortLikes  SortKey = "likes"
	SortRating SortKey = "rating"
)

// ParseSortKey accepts views, likes, rating or an empty string.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortViews, SortLikes, SortRating:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, s)
	}
}

// OrinuFilter narrows a catalog listing. Zero values mean no restriction.
type OrinuFilter struct {
	Day      PublishDay
	Category Category
	SortBy   SortKey
	Limit    int
}

// Matches reports whether o passes the day and category restrictions.
func (f OrinuFilter) Matches(o Orinu) bool {
	if f.Day != "" && o.PublishDay != f.Day {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && o.Category != f.Category {
		return false
	}
	return true
}

// FormatCount renders reader counts the way cards show them: 15420 becomes "15.4k".
func FormatCount(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
}

// ChaptersLabel renders a chapter count, e.g. "24 ch.".
func ChaptersLabel(n int) string {
	return strconv.Itoa(n) + " ch."
}
