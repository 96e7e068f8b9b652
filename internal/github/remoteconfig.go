package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

// FileFetcher reads a file from a repository. *Verifier satisfies it.
type FileFetcher interface {
	FetchFileContent(ctx context.Context, repo Repository, ref, path string) (string, error)
}

// FileFetcherFunc adapts a function to the FileFetcher interface.
type FileFetcherFunc func(ctx context.Context, repo Repository, ref, path string) (string, error)

// FetchFileContent calls f(ctx, repo, ref, path).
func (f FileFetcherFunc) FetchFileContent(ctx context.Context, repo Repository, ref, path string) (string, error) {
	return f(ctx, repo, ref, path)
}

// LoadConfig reads the release configuration of a GitHub repository at
// ref. When path is empty the configuration file names are tried in search
// order and the first one present is used. The returned source is
// "owner/repo:path".
func LoadConfig(ctx context.Context, fetcher FileFetcher, repo Repository, ref, path string) (*config.Config, string, error) {
	explicit := path != ""
	paths := config.FileNames()
	if explicit {
		paths = []string{path}
	}

	logger := log.WithComponent("github")
	for _, p := range paths {
		content, err := fetcher.FetchFileContent(ctx, repo, ref, p)
		if err != nil {
			if !explicit && IsNotFoundError(err) {
				continue
			}
			return nil, "", err
		}

		source := repo.String() + ":" + p
		format, err := config.FormatForPath(p)
		if err != nil {
			return nil, "", err
		}
		if format == config.FormatJS {
			return nil, "", fmt.Errorf("%s: %w", source, config.ErrScriptConfig)
		}

		cfg, err := config.LoadFromBytes([]byte(content), format)
		if errors.Is(err, config.ErrNoReleaseKey) && !explicit {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", source, err)
		}
		logger.Debug().Str("source", source).Str("ref", ref).Msg("loaded remote release configuration")
		return cfg, source, nil
	}
	return nil, "", fmt.Errorf("no release configuration found in %s", repo)
}
