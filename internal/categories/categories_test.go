package categories

import (
	"sync"
	"testing"
)

func TestCategorize(t *testing.T) {
	m := NewMapper()

	tests := []struct {
		ext  string
		want Category
	}{
		{"jpg", Images},
		{"JPG", Images},
		{"Png", Images},
		{"gif", Images},
		{"pdf", Documents},
		{"DOCX", Documents},
		{"txt", Documents},
		{"mp4", Videos},
		{"mp3", Audio},
		{"zip", Archives},
		{"tar", Archives},
		{"rs", Code},
		{"go", Code},
		{"yaml", Code},
		{"json", Data},
		{"csv", Data},
		{"exe", Executables},
		{"woff2", Fonts},
		{".jpg", Other},
		{" jpg", Other},
		{"jpg ", Other},
		{"xyz123", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := m.Categorize(tt.ext); got != tt.want {
				t.Errorf("Categorize(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestCategorizeIgnoresCase(t *testing.T) {
	m := NewMapper()

	if m.Categorize("JPG") != m.Categorize("jpg") || m.Categorize("jpg") != Images {
		t.Errorf("expected JPG and jpg to both be Images")
	}
}

func TestFolderNames(t *testing.T) {
	want := map[Category]string{
		Images:      "Images",
		Documents:   "Documents",
		Videos:      "Videos",
		Audio:       "Audio",
		Archives:    "Archives",
		Code:        "Code",
		Data:        "Data",
		Executables: "Executables",
		Fonts:       "Fonts",
		Other:       "Other",
	}

	for c, name := range want {
		if got := c.FolderName(); got != name {
			t.Errorf("%d.FolderName() = %q, want %q", c, got, name)
		}
		if c.String() != name {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), name)
		}
	}
}

func TestAllOrder(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(all))
	}
	if all[0] != Images || all[9] != Other {
		t.Errorf("unexpected order: %v", all)
	}
	for i, c := range all {
		if int(c) != i {
			t.Errorf("All()[%d] = %v, want declaration order", i, c)
		}
	}
}

func TestEveryTableEntryIsLowercase(t *testing.T) {
	m := NewMapper()
	for ext := range m.extensions {
		if normalize(ext) != ext {
			t.Errorf("table entry %q is not normalized", ext)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	base := NewMapper()
	custom := base.WithOverrides(map[string]Category{
		".HEIC": Documents,
		"log":   Documents,
		"":      Code,
	})

	if got := custom.Categorize("heic"); got != Documents {
		t.Errorf("override heic = %v, want Documents", got)
	}
	if got := custom.Categorize("log"); got != Documents {
		t.Errorf("override log = %v, want Documents", got)
	}
	if got := base.Categorize("heic"); got != Images {
		t.Errorf("base mapper changed: heic = %v, want Images", got)
	}
	if got := base.Categorize("log"); got != Other {
		t.Errorf("base mapper changed: log = %v, want Other", got)
	}
}

func TestExtensions(t *testing.T) {
	m := NewMapper()

	fonts := m.Extensions(Fonts)
	want := []string{"eot", "fnt", "fon", "otf", "ttf", "woff", "woff2"}
	if len(fonts) != len(want) {
		t.Fatalf("Extensions(Fonts) = %v, want %v", fonts, want)
	}
	for i := range want {
		if fonts[i] != want[i] {
			t.Errorf("Extensions(Fonts)[%d] = %q, want %q", i, fonts[i], want[i])
		}
	}

	if other := m.Extensions(Other); len(other) != 0 {
		t.Errorf("expected no extensions for Other, got %v", other)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		want    Category
		wantErr bool
	}{
		{"Images", Images, false},
		{"images", Images, false},
		{" FONTS ", Fonts, false},
		{"other", Other, false},
		{"pictures", Other, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	text, err := Archives.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var c Category
	if err := c.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if c != Archives {
		t.Errorf("round trip = %v, want Archives", c)
	}
	if err := c.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestMapperConcurrentReads(t *testing.T) {
	m := NewMapper()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if m.Categorize("PNG") != Images {
					t.Error("unexpected category under concurrent reads")
					return
				}
			}
		}()
	}
	wg.Wait()
}
