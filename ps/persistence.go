package ps

import (
	"errors"
	"os"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"
)

var (
	ErrNotInitialized = errors.New("persistence layer not initialized")
)

// JournalDir is the entry the journal keeps under the storage root
const JournalDir = ".git"

type Persistence struct {
	fs   billy.Filesystem
	repo *git.Repository // nil unless the journal is enabled
}

type options struct {
	journal bool
}

type Option func(*options)

// WithJournal commits every change to a Git repository kept in the storage root
func WithJournal() Option {
	return func(o *options) {
		o.journal = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsInitialized returns true if the persistence layer has a filesystem
func (p *Persistence) IsInitialized() bool {
	return p != nil && p.fs != nil
}

// ensureInitialized checks if the persistence layer is initialized and returns an error if not
func (p *Persistence) ensureInitialized() error {
	if !p.IsInitialized() {
		return ErrNotInitialized
	}
	return nil
}

// Root returns the storage root of the underlying filesystem
func (p *Persistence) Root() string {
	if !p.IsInitialized() {
		return ""
	}
	return p.fs.Root()
}

// Journaled reports whether changes are committed to a Git journal
func (p *Persistence) Journaled() bool {
	return p.IsInitialized() && p.repo != nil
}

func NewMemoryPersistence(opts ...Option) (Persistence, error) {
	wt := memfs.New()
	o := buildOptions(opts)

	if !o.journal {
		return Persistence{fs: wt}, nil
	}

	repo, err := git.Init(memory.NewStorage(), git.WithWorkTree(wt))
	if err != nil {
		return Persistence{}, err
	}

	return Persistence{
		fs:   wt,
		repo: repo,
	}, nil
}

func NewFilePersistence(baseDir string, opts ...Option) (Persistence, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return Persistence{}, err
	}

	wt := osfs.New(baseDir)
	o := buildOptions(opts)

	if !o.journal {
		return Persistence{fs: wt}, nil
	}

	fs, err := wt.Chroot(JournalDir)
	if err != nil {
		return Persistence{}, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository

	_, statErr := os.Stat(fs.Root())
	if statErr != nil {
		// Directory doesn't exist, initialize new repo
		repo, err = git.Init(storer, git.WithWorkTree(wt))
		if err != nil {
			return Persistence{}, err
		}
	} else {
		// Directory exists, open existing repo
		repo, err = git.Open(storer, wt)
		if err != nil {
			return Persistence{}, err
		}
	}

	return Persistence{
		fs:   wt,
		repo: repo,
	}, nil
}
