package db

import (
	"io"
	"strconv"
	"testing"

	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/ps"
	"github.com/nickyhof/DirDB/sql"
)

// setupBenchmarkEngine creates a table with test data for benchmarks
func setupBenchmarkEngine(b *testing.B) *Engine {
	persistence, err := ps.NewMemoryPersistence()
	if err != nil {
		b.Fatalf("Failed to initialize persistence: %v", err)
	}
	engine := NewEngine(&persistence, core.Identity{Name: "benchmark", Email: "bench@test.com"})

	engine.Execute("CREATE DATABASE bench")
	engine.Execute("USE bench")
	engine.Execute("CREATE TABLE users (id int, name varchar(20), age int, city varchar(10))")

	for i := 1; i <= 200; i++ {
		engine.Execute("INSERT INTO users values(" +
			strconv.Itoa(i) + ", 'User" + strconv.Itoa(i) + "', " + strconv.Itoa(20+i%50) + ", 'City" + strconv.Itoa(i%10) + "')")
	}

	return engine
}

func BenchmarkParse(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"SimpleSelect", "SELECT * FROM users"},
		{"SelectWithWhere", "SELECT name, age FROM users WHERE age > 30"},
		{"Insert", "INSERT INTO users values(1, 'Test', 25, 'NYC')"},
		{"Update", "UPDATE users SET age = 30 WHERE id = 1"},
		{"Delete", "DELETE FROM users WHERE id = 1"},
		{"CreateTable", "CREATE TABLE t (a1 int, a2 varchar(20), a3 float)"},
	}

	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := sql.Parse(q.query); err != nil {
					b.Fatalf("Parse error: %v", err)
				}
			}
		})
	}
}

func BenchmarkSelect(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if engine.Dispatch(io.Discard, "SELECT name FROM users WHERE age >= 40") {
			b.Fatal("Unexpected exit")
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("INSERT INTO users values(" + strconv.Itoa(1000+i) + ", 'Bench', 30, 'City1')"); err != nil {
			b.Fatalf("Insert failed: %v", err)
		}
	}
}
