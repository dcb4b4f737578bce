package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ProgressFunc is called after every chunk written with the bytes written so far and the declared total
type ProgressFunc func(done int64, total int64)

type DownloaderOption func(*Downloader)

// WithDownloadHTTPClient sets the client used for downloads; share the API client's so the timeout applies
func WithDownloadHTTPClient(c *http.Client) DownloaderOption {
	return func(d *Downloader) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithFilesystem sets where downloaded files are written
func WithFilesystem(fs billy.Filesystem) DownloaderOption {
	return func(d *Downloader) {
		if fs != nil {
			d.fs = fs
		}
	}
}

func WithDownloadLogger(l *slog.Logger) DownloaderOption {
	return func(d *Downloader) {
		if l != nil {
			d.logger = l
		}
	}
}

// Downloader streams a single HTTP response body to a file
type Downloader struct {
	httpClient *http.Client
	fs         billy.Filesystem
	logger     *slog.Logger
}

const downloadChunkSize = 32 * 1024

func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		fs:         osfs.New(""),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches url into dest, reporting progress to onProgress (which may be nil).
// The server must declare a content length. On failure nothing is left at dest.
func (d *Downloader) Download(ctx context.Context, url string, dest string, onProgress ProgressFunc) (int64, error) {
	u, err := ReencodeURL(url)
	if err != nil {
		return 0, fmt.Errorf("failed to get server pack from `%s`: %w: %w", url, ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get server pack from `%s`: %w: %w", u, ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	// Transparent decompression would hide the content length
	req.Header.Set("Accept-Encoding", "identity")

	d.logger.Debug("downloading", slog.String("url", u), slog.String("dest", dest))
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get server pack from `%s`: %w: %w", u, ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("failed to get server pack from `%s`: %w: invalid response status: %v", u, ErrRequestFailed, resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		return 0, fmt.Errorf("failed to get content length from `%s`: %w", u, ErrMissingContentLength)
	}

	f, err := d.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file at path `%s`: %w: %w", dest, ErrFileCreateFailed, err)
	}

	written, err := copyChunks(f, resp.Body, total, onProgress)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err == nil && written != total {
		err = fmt.Errorf("received %d of %d bytes: %w", written, total, io.ErrUnexpectedEOF)
	}
	if err != nil {
		if rerr := d.fs.Remove(dest); rerr != nil {
			d.logger.Warn("failed to remove partial download", slog.String("dest", dest), slog.String("error", rerr.Error()))
		}
		return written, fmt.Errorf("failed to download `%s` to `%s`: %w: %w", u, dest, ErrStreamIOFailed, err)
	}

	d.logger.Debug("downloaded", slog.String("dest", dest), slog.Int64("size", written))
	return written, nil
}

// copyChunks writes each chunk as soon as it is read, so the body is never held in memory
func copyChunks(dst io.Writer, src io.Reader, total int64, onProgress ProgressFunc) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var done int64
	reported := false
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return done, fmt.Errorf("error while writing to file: %w", err)
			}
			done += int64(n)
			if onProgress != nil {
				onProgress(done, total)
				reported = true
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return done, rerr
		}
	}
	if !reported && onProgress != nil && done == total {
		onProgress(done, total)
	}
	return done, nil
}
