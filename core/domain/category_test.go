package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCategoryTableMissingFileUsesDefaults(t *testing.T) {
	table := LoadCategoryTable("does/not/exist.json")
	if table.IsEmpty() {
		t.Fatal("expected built-in categories")
	}
	if len(table.Categories) != 7 {
		t.Errorf("len(Categories) = %d, want 7", len(table.Categories))
	}
	if table.Categories[0].Name != CategoryWork {
		t.Errorf("first category = %q, want Work", table.Categories[0].Name)
	}
}

func TestLoadCategoryTableBrokenFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	table := LoadCategoryTable(path)
	if table.IsEmpty() {
		t.Fatal("expected built-in categories on unreadable file")
	}
}

func TestLoadCategoryTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	content := `{"categories": [{"name": "Custom", "keywords": ["x"], "weight": 42}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table := LoadCategoryTable(path)
	if len(table.Categories) != 1 || table.Categories[0].Name != "Custom" {
		t.Errorf("unexpected table: %+v", table)
	}
}

func TestRenderTemplate(t *testing.T) {
	got := RenderTemplate("Hi {sender}, about '{subject}': {sender} again", "Ann", "Lunch")
	want := "Hi Ann, about 'Lunch': Ann again"
	if got != want {
		t.Errorf("RenderTemplate = %q, want %q", got, want)
	}
}

func TestReplyTemplateTableFallbacks(t *testing.T) {
	table := DefaultReplyTemplateTable()

	if tpl := table.ForCategory(CategoryWork); !strings.Contains(tpl.Brief, "{subject}") {
		t.Errorf("Work template missing subject placeholder: %q", tpl.Brief)
	}

	// Spam has no template of its own.
	spam := table.ForCategory(CategorySpam)
	def := table.Templates["default"]
	if spam.Brief != def.Brief {
		t.Error("unknown category should get the default template")
	}

	announcement := table.ForCategory(CategoryAnnouncement)
	newsletter := table.Templates[CategoryNewsletter]
	if announcement.Standard != newsletter.Standard {
		t.Error("Announcement should share the Newsletter template")
	}
}

func TestLoadReplyTemplateTableMissingFileUsesDefaults(t *testing.T) {
	table := LoadReplyTemplateTable("does/not/exist.json")
	if len(table.Templates) == 0 {
		t.Fatal("expected built-in templates")
	}
	if _, ok := table.Templates["default"]; !ok {
		t.Error("built-in table missing default template")
	}
}
