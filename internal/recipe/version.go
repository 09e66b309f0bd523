package recipe

import (
	"fmt"
	"strings"
	"time"
)

// VersionType classifies why a version exists.
type VersionType string

const (
	TypeOriginal    VersionType = "original"
	TypeVariation   VersionType = "variation"
	TypeImprovement VersionType = "improvement"
	TypeSeasonal    VersionType = "seasonal"
	TypeSource      VersionType = "source"
	TypeCustom      VersionType = "custom"
)

// ValidVersionTypes defines the allowed version type names.
var ValidVersionTypes = map[VersionType]bool{
	TypeOriginal:    true,
	TypeVariation:   true,
	TypeImprovement: true,
	TypeSeasonal:    true,
	TypeSource:      true,
	TypeCustom:      true,
}

// ParseVersionType converts a string to a VersionType.
func ParseVersionType(s string) (VersionType, error) {
	t := VersionType(strings.ToLower(strings.TrimSpace(s)))
	if !ValidVersionTypes[t] {
		return "", fmt.Errorf("unknown version type %q: must be one of: original, variation, improvement, seasonal, source, custom", s)
	}
	return t, nil
}

func (t VersionType) String() string { return string(t) }

// Valid reports whether t is a known version type.
func (t VersionType) Valid() bool { return ValidVersionTypes[t] }

// VersionStatus is the lifecycle state of a version.
//
// Transitions: draft → published → archived → published. Published
// versions never return to draft; archived is not terminal.
type VersionStatus string

const (
	StatusDraft     VersionStatus = "draft"
	StatusPublished VersionStatus = "published"
	StatusArchived  VersionStatus = "archived"
)

// ValidVersionStatuses defines the allowed status names.
var ValidVersionStatuses = map[VersionStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusArchived:  true,
}

// ParseVersionStatus converts a string to a VersionStatus.
func ParseVersionStatus(s string) (VersionStatus, error) {
	st := VersionStatus(strings.ToLower(strings.TrimSpace(s)))
	if !ValidVersionStatuses[st] {
		return "", fmt.Errorf("unknown version status %q: must be one of: draft, published, archived", s)
	}
	return st, nil
}

func (s VersionStatus) String() string { return string(s) }

// Valid reports whether s is a known status.
func (s VersionStatus) Valid() bool { return ValidVersionStatuses[s] }

// VersionMeta is the version metadata attached to every document.
type VersionMeta struct {
	// Number is the major.minor.patch version number, unique within a
	// family.
	Number string `json:"number" yaml:"number"`

	// Name is an optional display label ("Smoky variation").
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Type   VersionType   `json:"type" yaml:"type"`
	Status VersionStatus `json:"status" yaml:"status"`

	// IsMain marks the family's primary version. Exactly one version
	// per family holds it; the engine enforces the invariant.
	IsMain bool `json:"is_main" yaml:"is_main"`

	// ChangeDescription is required to publish.
	ChangeDescription string `json:"change_description,omitempty" yaml:"change_description,omitempty"`

	// BranchReason records why the version was branched, if it was.
	BranchReason string `json:"branch_reason,omitempty" yaml:"branch_reason,omitempty"`

	// ParentID is the id of the version this one was branched from;
	// empty for a family's root version.
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	AuthorID  string    `json:"author_id,omitempty" yaml:"author_id,omitempty"`
}

// IsRoot reports whether the version has no parent.
func (m VersionMeta) IsRoot() bool { return m.ParentID == "" }
