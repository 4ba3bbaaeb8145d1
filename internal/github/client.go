// client.go
//
// Orbit: lightweight multi-platform analytics and update-check service
// Copyright (c) 2026 The Orbit Authors
//
// This file is part of orbit-server.
// orbit-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// orbit-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with orbit-server.
// If not, see <https://www.gnu.org/licenses/>.

package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v62/github"
	"github.com/orbithq/orbit-server/internal/services"
)

// fetchTimeout bounds one release-list round trip.
const fetchTimeout = 10 * time.Second

// Client fetches releases from the GitHub REST API. It implements
// services.ReleaseFetcher.
type Client struct {
	gh *gh.Client
}

// NewClient builds a release fetcher. Unauthenticated requests work for
// public repositories; a token raises the rate limit and reaches private
// repos.
func NewClient(token string) *Client {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{gh: client}
}

// FetchReleases lists up to limit of the repo's most recent releases.
// repo is an "owner/name" reference.
func (c *Client) FetchReleases(ctx context.Context, repo string, limit int) ([]services.Release, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository reference %q, expected owner/name", repo)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	releases, _, err := c.gh.Repositories.ListReleases(ctx, owner, name, &gh.ListOptions{
		PerPage: limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]services.Release, 0, len(releases))
	for _, r := range releases {
		release := services.Release{
			TagName:    r.GetTagName(),
			Body:       r.GetBody(),
			Draft:      r.GetDraft(),
			Prerelease: r.GetPrerelease(),
			HTMLURL:    r.GetHTMLURL(),
		}
		for _, a := range r.Assets {
			release.Assets = append(release.Assets, services.ReleaseAsset{
				Name:        a.GetName(),
				DownloadURL: a.GetBrowserDownloadURL(),
			})
		}
		out = append(out, release)
	}

	return out, nil
}
