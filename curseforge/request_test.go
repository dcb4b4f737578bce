package curseforge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/packwiz/serverpack/core"
)

const testAPI = "https://addons-ecs.forgesvc.net/api/v2"

func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	mock := httpmock.NewMockTransport()
	client, err := NewClient(WithHTTPClient(&http.Client{Transport: mock}))
	if err != nil {
		t.Fatal(err)
	}
	return client, mock
}

func projectsJSON(names ...string) string {
	items := make([]string, len(names))
	for i, v := range names {
		items[i] = fmt.Sprintf(`{"id": %d, "name": %q, "latestFiles": []}`, i+1, v)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestSearch(t *testing.T) {
	client, mock := newMockClient(t)

	mock.RegisterResponderWithQuery("GET", testAPI+"/addon/search", map[string]string{
		"gameId":       "432",
		"sectionId":    "4471",
		"pageSize":     "3",
		"searchFilter": "sky factory",
	}, func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("User-Agent") != core.UserAgent {
			t.Errorf("Unexpected user agent %q", req.Header.Get("User-Agent"))
		}
		if req.Header.Get("Accept") != "application/json" {
			t.Errorf("Unexpected accept header %q", req.Header.Get("Accept"))
		}
		return httpmock.NewStringResponse(200, projectsJSON("SkyFactory 4", "SkyFactory 3", "Sky Factory One")), nil
	})

	results, err := client.Search(context.Background(), "sky factory", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, found %d", len(results))
	}
	for i, want := range []string{"SkyFactory 4", "SkyFactory 3", "Sky Factory One"} {
		if results[i].Name != want {
			t.Errorf("Result %d is %q, expected %q", i, results[i].Name, want)
		}
	}
}

func TestSearchEncodesTerm(t *testing.T) {
	client, mock := newMockClient(t)

	term := "all the mods & more/100%"
	mock.RegisterResponder("GET", `=~^https://addons-ecs\.forgesvc\.net/api/v2/addon/search`,
		func(req *http.Request) (*http.Response, error) {
			if got := req.URL.Query().Get("searchFilter"); got != term {
				t.Errorf("Expected search term %q to survive encoding, found %q", term, got)
			}
			if strings.Contains(req.URL.RawQuery, " ") || strings.Contains(req.URL.RawQuery, "&more") {
				t.Errorf("Search term was not percent-encoded: %s", req.URL.RawQuery)
			}
			return httpmock.NewStringResponse(200, "[]"), nil
		})

	if _, err := client.Search(context.Background(), term, 1); err != nil {
		t.Fatal(err)
	}
	if mock.GetTotalCallCount() != 1 {
		t.Errorf("Expected 1 request, found %d", mock.GetTotalCallCount())
	}
}

func TestSearchPageSize(t *testing.T) {
	client, mock := newMockClient(t)

	var requested []string
	mock.RegisterResponder("GET", `=~^https://addons-ecs\.forgesvc\.net/api/v2/addon/search`,
		func(req *http.Request) (*http.Response, error) {
			requested = append(requested, req.URL.Query().Get("pageSize"))
			// The API doesn't always honour pageSize
			return httpmock.NewStringResponse(200, projectsJSON("a", "b", "c", "d", "e")), nil
		})

	for _, size := range []int{2, 0, -4} {
		results, err := client.Search(context.Background(), "pack", size)
		if err != nil {
			t.Fatal(err)
		}
		want := size
		if want < 1 {
			want = 1
		}
		if len(results) != want {
			t.Errorf("Search with page size %d returned %d results", size, len(results))
		}
	}
	if strings.Join(requested, ",") != "2,1,1" {
		t.Errorf("Unexpected requested page sizes %v", requested)
	}
}

func TestSearchNoResults(t *testing.T) {
	client, mock := newMockClient(t)
	mock.RegisterResponder("GET", `=~/addon/search`, httpmock.NewStringResponder(200, "[]"))

	results, err := client.Search(context.Background(), "qwertyuiopasdfgh", 5)
	if err != nil {
		t.Fatalf("No results must not be an error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Expected an empty list, found %v", results)
	}
}

func TestRequestFailures(t *testing.T) {
	cases := []struct {
		name      string
		responder httpmock.Responder
		want      error
	}{
		{"not found", httpmock.NewStringResponder(404, "Not Found"), core.ErrRequestFailed},
		{"server error", httpmock.NewStringResponder(500, "oops"), core.ErrRequestFailed},
		{"transport", httpmock.NewErrorResponder(errors.New("connection reset")), core.ErrRequestFailed},
		{"html", httpmock.NewStringResponder(200, "<html>maintenance</html>"), core.ErrDecodeFailed},
		{"wrong shape", httpmock.NewStringResponder(200, `{"id": 1}`), core.ErrDecodeFailed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client, mock := newMockClient(t)
			mock.RegisterNoResponder(c.responder)

			_, err := client.Search(context.Background(), "pack", 1)
			if !errors.Is(err, c.want) {
				t.Errorf("Search: expected %v, found %v", c.want, err)
			}
		})
	}

	client, mock := newMockClient(t)
	mock.RegisterNoResponder(httpmock.NewStringResponder(200, `[1, 2]`))
	if _, err := client.GetProject(context.Background(), 1); !errors.Is(err, core.ErrDecodeFailed) {
		t.Errorf("GetProject: expected ErrDecodeFailed, found %v", err)
	}
	if _, err := client.GetFileDetail(context.Background(), 1, 2); !errors.Is(err, core.ErrDecodeFailed) {
		t.Errorf("GetFileDetail: expected ErrDecodeFailed, found %v", err)
	}

	mock.RegisterNoResponder(httpmock.NewStringResponder(404, ""))
	if _, err := client.ResolveDownloadURL(context.Background(), 1, 2); !errors.Is(err, core.ErrRequestFailed) {
		t.Errorf("ResolveDownloadURL: expected ErrRequestFailed, found %v", err)
	}
}

func TestGetProject(t *testing.T) {
	client, mock := newMockClient(t)
	mock.RegisterResponder("GET", testAPI+"/addon/296062", httpmock.NewBytesResponder(200, projectFixture))

	p, err := client.GetProject(context.Background(), 296062)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "SkyFactory 4" || len(p.LatestFiles) != 2 {
		t.Errorf("Unexpected project %q with %d files", p.Name, len(p.LatestFiles))
	}
}

func TestGetFileDetail(t *testing.T) {
	client, mock := newMockClient(t)
	mock.RegisterResponder("GET", testAPI+"/addon/296062/file/3012800", httpmock.NewBytesResponder(200, fileFixture))

	f, err := client.GetFileDetail(context.Background(), 296062, 3012800)
	if err != nil {
		t.Fatal(err)
	}
	if f.FileName != "SkyFactory-4_Client_4.2.2.zip" || !f.HasServerPack() {
		t.Errorf("Unexpected file %q (server pack: %v)", f.FileName, f.HasServerPack())
	}
}

func TestResolveDownloadURL(t *testing.T) {
	client, mock := newMockClient(t)
	mock.RegisterResponder("GET", testAPI+"/addon/296062/file/3012801/download-url",
		httpmock.NewStringResponder(200, " https://edge.forgecdn.net/files/3012/801/SkyFactory-4_Server_4.2.2.zip\n"))

	u, err := client.ResolveDownloadURL(context.Background(), 296062, 3012801)
	if err != nil {
		t.Fatal(err)
	}
	if u != "https://edge.forgecdn.net/files/3012/801/SkyFactory-4_Server_4.2.2.zip" {
		t.Errorf("Unexpected download url %q", u)
	}
}

func TestBaseURLOverride(t *testing.T) {
	mock := httpmock.NewMockTransport()
	client, err := NewClient(
		WithBaseURL("http://mirror.example/api/v2/"),
		WithGameID(1),
		WithSectionID(2),
		WithHTTPClient(&http.Client{Transport: mock}),
	)
	if err != nil {
		t.Fatal(err)
	}
	mock.RegisterResponderWithQuery("GET", "http://mirror.example/api/v2/addon/search",
		"gameId=1&sectionId=2&pageSize=1&searchFilter=x", httpmock.NewStringResponder(200, "[]"))

	if _, err := client.Search(context.Background(), "x", 1); err != nil {
		t.Fatal(err)
	}
}

func TestNewClientTransportInit(t *testing.T) {
	cases := map[string][]Option{
		"negative timeout": {WithTimeout(-time.Second)},
		"relative url":     {WithBaseURL("addons-ecs.forgesvc.net/api/v2")},
		"bad scheme":       {WithBaseURL("ftp://addons-ecs.forgesvc.net/api/v2")},
		"unparseable url":  {WithBaseURL("https://[::1")},
	}
	for name, opts := range cases {
		if _, err := NewClient(opts...); !errors.Is(err, core.ErrTransportInit) {
			t.Errorf("%s: expected ErrTransportInit, found %v", name, err)
		}
	}
}

func TestNewClientProxy(t *testing.T) {
	t.Setenv("NO_PROXY", "")
	t.Setenv("HTTPS_PROXY", "ftp://proxy.example:21")
	if _, err := NewClient(); !errors.Is(err, core.ErrTransportInit) {
		t.Errorf("Expected ErrTransportInit for an unusable proxy, found %v", err)
	}

	t.Setenv("HTTPS_PROXY", "http://proxy.example:3128")
	client, err := NewClient(WithTimeout(5 * time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if client.HTTPClient().Timeout != 5*time.Second {
		t.Errorf("Expected the timeout to be applied, found %v", client.HTTPClient().Timeout)
	}
}

func TestWithConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Timeout = 15 * time.Second
	client, err := NewClient(WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if client.HTTPClient().Timeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, found %v", client.HTTPClient().Timeout)
	}
}
