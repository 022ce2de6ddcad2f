package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/paravault/para/internal/atomicfile"
	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/paths"
	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/slugs"
	"github.com/paravault/para/internal/template"
	"github.com/paravault/para/internal/vault"
	"github.com/paravault/para/internal/wikilink"
)

// Entity types with special handling. Any other configured template name is
// created by rendering its template as-is.
const (
	TypeProject  = "project"
	TypeArea     = "area"
	TypeResource = "resource"
	TypePost     = "post"
	TypeWork     = "work"
	TypeEpisode  = "episode"
	TypeScratch  = "scratch"
)

// Template variants selected by NewOptions flags.
const (
	TemplateEpisodeSolo    = "episode-solo"
	TemplateScratchRoot    = "scratch-root"
	TemplateResourceFolder = "resource-folder"
)

// DefaultTitle is used when no title is given.
const DefaultTitle = "Untitled"

var entityPrefixRe = regexp.MustCompile(`^[a-z]{2}$`)

// NewOptions are the optional inputs to Create. Which fields matter depends
// on the entity type:
//   - Prefix: explicit project/area/resource prefix, or the parent prefix of a work item
//   - Area: area prefix for posts; free-form area reference otherwise
//   - Solo, AtRoot: select the episode-solo and scratch-root variants
type NewOptions struct {
	Prefix  string
	Area    string
	Deps    string // comma-separated
	Tag     string
	Content string
	Folder  string
	Solo    bool
	AtRoot  bool
}

func (o NewOptions) validate(typeName string) error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Prefix,
			validation.When(typeName == TypeWork, validation.Required.Error("is required to identify the parent project or area")),
			validation.Match(entityPrefixRe).Error("must be two lowercase letters"),
		),
		validation.Field(&o.Area,
			validation.When(typeName == TypePost,
				validation.Required.Error("is required to identify the area"),
				validation.Match(entityPrefixRe).Error("must be a two-letter area prefix"),
			),
		),
		validation.Field(&o.Folder, validation.By(func(value interface{}) error {
			if s, _ := value.(string); strings.Contains(paths.NormalizeRel(s), "..") {
				return fmt.Errorf("must stay inside the vault")
			}
			return nil
		})),
	)
}

// CreateResult describes what Create wrote.
type CreateResult struct {
	Type     string   `json:"type"`
	Template string   `json:"template"`
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Files    []string `json:"files,omitempty"`
	// Prefix is the entity or parent prefix; GeneratedPrefix is set when it
	// was sampled rather than supplied.
	Prefix          string `json:"prefix,omitempty"`
	GeneratedPrefix bool   `json:"generated_prefix,omitempty"`
	ItemCode        string `json:"item_code,omitempty"`
	// Merged is set when a file was added to an existing resource folder.
	Merged bool `json:"merged,omitempty"`
}

// TemplateName returns the template used for typeName given the variant
// flags in opts.
func TemplateName(typeName string, opts NewOptions) string {
	switch {
	case typeName == TypeEpisode && opts.Solo:
		return TemplateEpisodeSolo
	case typeName == TypeScratch && opts.AtRoot:
		return TemplateScratchRoot
	case typeName == TypeResource && opts.Prefix != "":
		return TemplateResourceFolder
	}
	return typeName
}

// Create materializes a new entity of typeName from its template.
func (s *Service) Create(typeName, title string, opts NewOptions) (*CreateResult, error) {
	typeName = strings.TrimSpace(typeName)
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	if err := opts.validate(typeName); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	tmplName := TemplateName(typeName, opts)
	if _, ok := s.cfg.Template(typeName); !ok {
		if _, ok := s.cfg.Template(tmplName); !ok {
			return nil, s.unknownType(typeName)
		}
	}

	slug := slugs.Slugify(title)
	if slug == "" {
		slug = slugs.Slugify(DefaultTitle)
	}

	vars := s.baseVariables(title, slug, typeName, opts)
	res := &CreateResult{Type: typeName, Template: tmplName, Title: title}

	switch typeName {
	case TypeProject, TypeArea:
		if err := s.assignEntityPrefix(opts.Prefix, vars, res); err != nil {
			return nil, err
		}
	case TypeResource:
		if opts.Prefix != "" {
			vars["prefix"] = opts.Prefix
			res.Prefix = opts.Prefix
			existing, err := s.layout.FindFolder(s.layout.Root(vault.KindResource), opts.Prefix)
			if err == nil {
				return s.mergeIntoResource(existing, slug, vars, res)
			}
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
	case TypePost:
		if err := s.assignItem(opts.Area, vault.SectionPosts, vars, res, vault.KindArea); err != nil {
			return nil, err
		}
	case TypeWork:
		if err := s.assignItem(opts.Prefix, vault.SectionWork, vars, res, vault.KindProject, vault.KindArea); err != nil {
			return nil, err
		}
	default:
		if opts.Prefix != "" {
			vars["prefix"] = opts.Prefix
			res.Prefix = opts.Prefix
		}
	}

	tmpl, ok := s.cfg.Template(tmplName)
	if !ok {
		return nil, s.unknownType(tmplName)
	}

	var err error
	if tmpl.IsSingleFile() {
		err = s.writeSingle(tmpl, vars, res)
	} else {
		err = s.writeMulti(tmpl, vars, res)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) unknownType(name string) error {
	return fmt.Errorf("%w: no template named %q (available: %s)",
		ErrUnknownType, name, strings.Join(s.cfg.TemplateNames(), ", "))
}

func (s *Service) baseVariables(title, slug, typeName string, opts NewOptions) template.Variables {
	vars := template.NewVariables(title, slug, s.now())
	vars["entity"] = typeName
	vars["status"] = string(vault.StatusBacklog)
	vars["statusTitle"] = vault.StatusBacklog.Title()
	vars["projectsRoot"] = paths.NormalizeRel(s.cfg.ProjectsRoot)
	vars["areasRoot"] = paths.NormalizeRel(s.cfg.AreasRoot)
	vars["resourcesRoot"] = paths.NormalizeRel(s.cfg.ResourcesRoot)
	vars["inboxRoot"] = paths.NormalizeRel(s.cfg.InboxRoot)
	vars["journalRoot"] = paths.NormalizeRel(s.cfg.GetJournalRoot())

	vars.Set("type", opts.Tag)
	vars.Set("content", opts.Content)
	vars.Set("area", opts.Area)
	vars.Set("folder", paths.NormalizeRel(opts.Folder))

	deps := wikilink.ParseList(opts.Deps)
	if len(deps) > 0 {
		links := make([]string, len(deps))
		lines := make([]string, len(deps))
		for i, d := range deps {
			links[i] = d.String()
			lines[i] = "- " + links[i]
		}
		vars["deps"] = strings.Join(lines, "\n")
		vars["depsInline"] = strings.Join(links, ", ")
	}
	return vars
}

// assignEntityPrefix sets a project/area prefix, generating one when none
// was supplied. Prefixes are unique across the projects and areas roots.
func (s *Service) assignEntityPrefix(explicit string, vars template.Variables, res *CreateResult) error {
	used, err := s.layout.UsedEntityPrefixes()
	if err != nil {
		return err
	}

	p := explicit
	if p != "" {
		if _, taken := used[p]; taken {
			return fmt.Errorf("%w: prefix %q is already used by a project or area", ErrExists, p)
		}
	} else {
		p, err = s.gen.Unique(prefix.EntityLength, used)
		if err != nil {
			return err
		}
		res.GeneratedPrefix = true
	}

	vars["prefix"] = p
	res.Prefix = p
	return nil
}

// assignItem resolves the parent container of a work item or post and
// generates the item code.
func (s *Service) assignItem(parent string, section vault.Section, vars template.Variables, res *CreateResult, kinds ...vault.Kind) error {
	container, _, err := s.layout.FindContainer(parent, kinds...)
	if err != nil {
		return err
	}

	used, err := s.layout.UsedItemCodes(container.RelPath, section)
	if err != nil {
		return err
	}
	code, err := s.gen.Unique(section.CodeLength(), used)
	if err != nil {
		return err
	}

	vars["prefix"] = parent
	vars["itemPrefix"] = code
	vars["parent"] = container.Name
	vars["folder"] = container.RelPath
	if section == vault.SectionPosts {
		vars["area"] = container.Name
	}

	res.Prefix = parent
	res.ItemCode = code
	return nil
}

// mergeIntoResource adds a single file to an existing resource folder,
// using the body of the flat resource template.
func (s *Service) mergeIntoResource(folder vault.Entry, slug string, vars template.Variables, res *CreateResult) (*CreateResult, error) {
	tmpl, ok := s.cfg.Template(TypeResource)
	if !ok || !tmpl.IsSingleFile() {
		return nil, fmt.Errorf("%w: adding to resource folder %s needs a single-file %q template", ErrUnknownType, folder.Name, TypeResource)
	}

	vars["folder"] = folder.RelPath
	vars["parent"] = folder.Name
	rel := path.Join(folder.RelPath, slug+".md")
	if err := s.createFile(rel, template.Render(tmpl.Content, vars)); err != nil {
		return nil, err
	}

	res.Template = TypeResource
	res.Path = rel
	res.Files = []string{rel}
	res.Merged = true
	return res, nil
}

func (s *Service) writeSingle(tmpl *config.Template, vars template.Variables, res *CreateResult) error {
	rel := paths.NormalizeRel(template.Render(tmpl.Path, vars))
	if rel == "" {
		return fmt.Errorf("%w: template %q rendered an empty path", ErrInvalid, res.Template)
	}
	if err := s.createFile(rel, template.Render(tmpl.Content, vars)); err != nil {
		return err
	}
	res.Path = rel
	res.Files = []string{rel}
	return nil
}

// writeMulti creates the template folder and each of its files. Files
// written before a failure are left in place.
func (s *Service) writeMulti(tmpl *config.Template, vars template.Variables, res *CreateResult) error {
	folderRel := paths.NormalizeRel(template.Render(tmpl.Folder, vars))
	if folderRel == "" {
		return fmt.Errorf("%w: template %q rendered an empty folder", ErrInvalid, res.Template)
	}
	folder, err := s.layout.Path(folderRel)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, folderRel, err)
	}
	if vault.Exists(folder) {
		return fmt.Errorf("%w: %s", ErrExists, folderRel)
	}
	if err := vault.EnsureDir(folder); err != nil {
		return err
	}
	res.Path = folderRel

	for _, f := range tmpl.Files {
		name := paths.NormalizeRel(template.Render(f.Name, vars))
		if name == "" {
			return fmt.Errorf("%w: template %q rendered an empty file name", ErrInvalid, res.Template)
		}
		rel := path.Join(folderRel, name)
		if err := s.createFile(rel, template.Render(f.Content, vars)); err != nil {
			return err
		}
		res.Files = append(res.Files, rel)
	}
	return nil
}

// createFile writes a new file at a vault-relative path, creating parent
// directories. It never overwrites.
func (s *Service) createFile(rel, content string) error {
	abs, err := s.layout.Path(rel)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, rel, err)
	}
	if vault.Exists(abs) {
		return fmt.Errorf("%w: %s", ErrExists, rel)
	}
	if err := vault.EnsureDir(filepath.Dir(abs)); err != nil {
		return err
	}
	if err := atomicfile.Create(abs, []byte(content)); err != nil {
		if atomicfile.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrExists, rel)
		}
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	slog.Debug("wrote file", "path", rel, "bytes", len(content))
	return nil
}
