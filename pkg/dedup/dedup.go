// Package dedup groups files by content digest and drops exact duplicates.
package dedup

import (
	"fmt"
	"sync"

	"github.com/codingsince1985/checksum"
)

// Algorithm selects the content digest used to compare files.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256" // default
)

// ParseAlgorithm validates a user-supplied algorithm name. The empty string
// maps to SHA256.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return SHA256, nil
	case MD5, SHA1, SHA256:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("unsupported hash algorithm %q (use md5, sha1 or sha256)", s)
}

// Group is a set of paths sharing one content digest, in input order.
type Group []string

// Options configures digest computation.
type Options struct {
	// Algorithm defaults to SHA256 when empty.
	Algorithm Algorithm

	// Workers bounds concurrent digest computation. Values below 2 mean
	// sequential hashing. Grouping order is input order either way.
	Workers int
}

// Groups partitions files by full-content digest.
//
// Groups appear in the order their digest was first seen, and files within a
// group keep their input order. Every input file lands in exactly one group.
// Any unreadable file aborts the whole operation.
func Groups(files []string, opts Options) ([]Group, error) {
	digests, err := digestAll(files, opts)
	if err != nil {
		return nil, err
	}

	var order []string
	byDigest := make(map[string]Group)
	for i, path := range files {
		d := digests[i]
		if _, seen := byDigest[d]; !seen {
			order = append(order, d)
		}
		byDigest[d] = append(byDigest[d], path)
	}

	groups := make([]Group, 0, len(order))
	for _, d := range order {
		groups = append(groups, byDigest[d])
	}
	return groups, nil
}

// Deduplicate returns one representative per content-identical group: the
// first file encountered in input order.
func Deduplicate(files []string, opts Options) ([]string, error) {
	groups, err := Groups(files, opts)
	if err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(groups))
	for _, g := range groups {
		unique = append(unique, g[0])
	}
	return unique, nil
}

// digestAll hashes every file, optionally fanning out across a bounded pool
// of workers. Results are indexed by input position so downstream grouping
// stays deterministic regardless of completion order.
func digestAll(files []string, opts Options) ([]string, error) {
	digests := make([]string, len(files))

	if opts.Workers < 2 {
		for i, path := range files {
			d, err := Sum(path, opts.Algorithm)
			if err != nil {
				return nil, err
			}
			digests[i] = d
		}
		return digests, nil
	}

	errs := make([]error, len(files))
	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			digests[i], errs[i] = Sum(path, opts.Algorithm)
		}(i, path)
	}
	wg.Wait()

	// Report the first failure in input order.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return digests, nil
}

// Sum computes the streamed content digest of the file at path.
func Sum(path string, alg Algorithm) (string, error) {
	var (
		digest string
		err    error
	)
	switch alg {
	case MD5:
		digest, err = checksum.MD5sum(path)
	case SHA1:
		digest, err = checksum.SHA1sum(path)
	case "", SHA256:
		digest, err = checksum.SHA256sum(path)
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", alg)
	}
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return digest, nil
}
