package curseforge

import "testing"

func TestParseProjectRef(t *testing.T) {
	cases := map[string]projectRef{
		"296062":                                                                      {ID: 296062},
		"skyfactory-4":                                                                {Slug: "skyfactory-4"},
		"https://www.curseforge.com/minecraft/modpacks/skyfactory-4":                  {Slug: "skyfactory-4"},
		"https://curseforge.com/minecraft/modpacks/skyfactory-4?page=2":               {Slug: "skyfactory-4"},
		"https://minecraft.curseforge.com/projects/skyfactory-4":                      {Slug: "skyfactory-4"},
		"https://www.curseforge.com/minecraft/modpacks/skyfactory-4/files/3012800":    {Slug: "skyfactory-4", FileID: 3012800},
		"https://www.curseforge.com/minecraft/modpacks/skyfactory-4/download/3012800": {Slug: "skyfactory-4", FileID: 3012800},
	}
	for in, want := range cases {
		got, err := parseProjectRef(in)
		if err != nil {
			t.Errorf("Failed to parse %q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseProjectRef(%q) = %+v, expected %+v", in, got, want)
		}
	}

	for _, in := range []string{"", "-5", "Sky Factory", "https://example.com/minecraft/modpacks/x"} {
		if _, err := parseProjectRef(in); err == nil {
			t.Errorf("Expected %q to be rejected", in)
		}
	}
}
