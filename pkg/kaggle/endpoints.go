package kaggle

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the base URL for the Kaggle public API
	DefaultBaseURL = "https://www.kaggle.com/api/v1"

	// CompetitionsEndpoint lists competitions page by page
	CompetitionsEndpoint = "/competitions/list"

	// KernelsEndpoint lists kernels for a competition page by page
	KernelsEndpoint = "/kernels/list"

	// KernelPullEndpoint pulls one kernel's metadata and source blob
	KernelPullEndpoint = "/kernels/pull"

	// DefaultPageSize is the default page size for listing requests
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the API accepts
	MaxPageSize = 200
)

// CompetitionsListURL constructs the URL for one page of the competitions listing
func CompetitionsListURL(baseURL string, page int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	return fmt.Sprintf("%s%s?%s", baseURL, CompetitionsEndpoint, params.Encode())
}

// KernelsListURL constructs the URL for one page of a competition's kernel listing
func KernelsListURL(baseURL, competitionRef string, page, pageSize int) string {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	params := url.Values{}
	params.Set("competition", competitionRef)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	return fmt.Sprintf("%s%s?%s", baseURL, KernelsEndpoint, params.Encode())
}

// KernelPullURL constructs the URL for pulling one kernel by its "author/slug" ref
func KernelPullURL(baseURL, kernelRef string) (string, error) {
	author, slug, err := SplitRef(kernelRef)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("userName", author)
	params.Set("kernelSlug", slug)

	return fmt.Sprintf("%s%s?%s", baseURL, KernelPullEndpoint, params.Encode()), nil
}

// SplitRef splits an "author/slug" kernel ref into its parts
func SplitRef(ref string) (author, slug string, err error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid kernel ref %q: expected author/slug", ref)
	}
	return parts[0], parts[1], nil
}

// SanitizeRef trims whitespace and any trailing slash from a ref
func SanitizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	return strings.TrimSuffix(ref, "/")
}
