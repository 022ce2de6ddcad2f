package config

import (
	"errors"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.VaultPath, validation.Required, validation.By(absolutePath)),
		validation.Field(&c.ProjectsRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.AreasRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.ResourcesRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.InboxRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.ArchiveProjectsRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.ArchiveAreasRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.ArchiveResourcesRoot, validation.Required, validation.By(vaultRelative)),
		validation.Field(&c.JournalRoot, validation.By(vaultRelative)),
		validation.Field(&c.AgentsFile, validation.By(vaultRelative)),
		validation.Field(&c.Templates),
	)
}

// Validate checks that exactly one template shape is populated.
func (t *Template) Validate() error {
	if t == nil {
		return errors.New("template is empty")
	}
	single, multi := t.IsSingleFile(), t.IsMultiFile()
	switch {
	case single && multi:
		return errors.New("template must define either path or folder/files, not both")
	case !single && !multi:
		return errors.New("template must define path (single file) or folder and files (multi-file)")
	}
	return validation.ValidateStruct(t,
		validation.Field(&t.Folder, validation.When(multi, validation.Required)),
		validation.Field(&t.Files, validation.When(multi, validation.Required)),
	)
}

// Validate checks a multi-file template entry.
func (f FileSpec) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.By(vaultRelative)),
	)
}

func absolutePath(value interface{}) error {
	s, _ := value.(string)
	if s != "" && !filepath.IsAbs(s) {
		return errors.New("must be an absolute path")
	}
	return nil
}

func vaultRelative(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return errors.New("must be relative to the vault")
	}
	clean := filepath.ToSlash(filepath.Clean(s))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.New("must not escape the vault")
	}
	return nil
}
