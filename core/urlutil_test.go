package core

import "testing"

func TestDefaultFileName(t *testing.T) {
	cases := map[string]string{
		"https://edge.forgecdn.net/files/3012/800/SkyFactory-4_Server_4.2.2.zip":   "SkyFactory-4_Server_4.2.2.zip",
		"https://edge.forgecdn.net/files/3012/800/Server Files 1.2.zip":            "Server Files 1.2.zip",
		"https://edge.forgecdn.net/files/3012/800/Server%20Files%201.2.zip":        "Server Files 1.2.zip",
		"https://edge.forgecdn.net/files/3012/800/pack.zip?token=abc/def#frag":     "pack.zip",
		"https://edge.forgecdn.net/files/3012/800/":                                "serverpack.zip",
		"  https://edge.forgecdn.net/files/3012/800/[1.16.5]Server.zip\n":         "[1.16.5]Server.zip",
		"https://edge.forgecdn.net/files/3012/800/..":                              "serverpack.zip",
		"https://edge.forgecdn.net/files/3012/800/evil%2F..%2Fescape.zip":          "evil_.._escape.zip",
	}
	for in, want := range cases {
		if got := DefaultFileName(in); got != want {
			t.Errorf("DefaultFileName(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestReencodeURL(t *testing.T) {
	got, err := ReencodeURL("https://edge.forgecdn.net/files/1/2/[1.16] Server.zip")
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://edge.forgecdn.net/files/1/2/%5B1.16%5D%20Server.zip"; got != want {
		t.Errorf("Expected %s, found %s", want, got)
	}

	if _, err := ReencodeURL("ftp://example.com/pack.zip"); err == nil {
		t.Error("Expected an error for a non-http scheme")
	}
}
