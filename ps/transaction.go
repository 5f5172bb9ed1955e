package ps

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/nickyhof/DirDB/core"
)

// sessionTrailer prefixes the session line appended to journal messages
const sessionTrailer = "Session: "

type Transaction struct {
	Id      string
	When    time.Time
	Author  string // "Name <email>" format
	Message string
	Session string
}

func (transaction Transaction) String() string {
	return fmt.Sprintf("Transaction{Id: %s, When: %s, Author: %s, Message: %s}",
		transaction.Id, transaction.When, transaction.Author, transaction.Message)
}

// IsEmpty reports whether the transaction refers to no commit
func (transaction Transaction) IsEmpty() bool {
	return transaction.Id == ""
}

func transactionFromCommit(commit *object.Commit) Transaction {
	author := ""
	if commit.Author.Name != "" || commit.Author.Email != "" {
		author = fmt.Sprintf("%s <%s>", commit.Author.Name, commit.Author.Email)
	}

	message, session := splitSession(commit.Message)

	return Transaction{
		Id:      commit.Hash.String(),
		When:    commit.Committer.When,
		Author:  author,
		Message: message,
		Session: session,
	}
}

func splitSession(message string) (string, string) {
	message = strings.TrimSpace(message)
	index := strings.LastIndex(message, "\n\n"+sessionTrailer)
	if index < 0 {
		return message, ""
	}
	return message[:index], strings.TrimSpace(message[index+len(sessionTrailer)+2:])
}

func (persistence *Persistence) LatestTransaction() Transaction {
	if !persistence.Journaled() {
		return Transaction{}
	}

	headRef, err := persistence.repo.Head()
	if err != nil || headRef == nil {
		// No commits yet
		return Transaction{}
	}

	commit, err := persistence.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Transaction{}
	}

	return transactionFromCommit(commit)
}

// Transactions returns the journal, newest first
func (persistence *Persistence) Transactions() []Transaction {
	var transactions []Transaction

	if persistence.LatestTransaction().IsEmpty() {
		return transactions
	}

	cIter, err := persistence.repo.Log(&git.LogOptions{})
	if err != nil {
		return transactions
	}

	cIter.ForEach(func(c *object.Commit) error {
		transactions = append(transactions, transactionFromCommit(c))
		return nil
	})

	return transactions
}

// commit records the current state of the storage root in the journal.
// Without a journal, or when nothing changed on disk, it returns the
// latest transaction unchanged.
func (persistence *Persistence) commit(message string, identity core.Identity) (Transaction, error) {
	if !persistence.Journaled() {
		return Transaction{}, nil
	}

	wt, err := persistence.repo.Worktree()
	if err != nil {
		return Transaction{}, err
	}

	status, err := wt.Status()
	if err != nil {
		return Transaction{}, err
	}

	// Empty directories are not tracked, so creating a database alone
	// leaves the tree clean
	if status.IsClean() {
		return persistence.LatestTransaction(), nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return Transaction{}, fmt.Errorf("failed to stage changes: %w", err)
	}

	if identity.Session != "" {
		message = message + "\n\n" + sessionTrailer + identity.Session
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  identity.Name,
			Email: identity.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to commit: %w", err)
	}

	commit, err := persistence.repo.CommitObject(hash)
	if err != nil {
		return Transaction{}, err
	}

	return transactionFromCommit(commit), nil
}
