// Package migrate applies ordered JSON schema migrations at startup.
//
// Migration files live in a directory as NNN_description.json, where NNN
// is a zero-padded ordinal. Each file holds a single MongoDB command
// document (anything runCommand accepts: collMod, createIndexes, custom
// update commands). Applied migrations are recorded in the
// schema_migrations collection so each file runs exactly once; the run
// aborts on the first failure so later migrations never see a
// half-applied schema.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collection = "schema_migrations"

type record struct {
	Name      string    `bson:"_id"`
	AppliedAt time.Time `bson:"applied_at"`
}

// Pending lists migration files in fsys not yet recorded as applied,
// in lexical (ordinal) order.
func Pending(ctx context.Context, db *mongo.Database, fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	applied, err := appliedSet(ctx, db)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, name := range names {
		if _, ok := applied[name]; !ok {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

func appliedSet(ctx context.Context, db *mongo.Database) (map[string]struct{}, error) {
	cur, err := db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	defer cur.Close(ctx)

	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		set[r.Name] = struct{}{}
	}
	return set, nil
}

// Run applies every pending migration in order, stopping at the first
// failure. Returns the number of migrations applied.
func Run(ctx context.Context, db *mongo.Database, fsys fs.FS, log *zap.Logger) (int, error) {
	pending, err := Pending(ctx, db, fsys)
	if err != nil {
		return 0, err
	}

	for i, name := range pending {
		cmd, err := loadCommand(fsys, name)
		if err != nil {
			return i, fmt.Errorf("migration %s: %w", name, err)
		}

		if err := db.RunCommand(ctx, cmd).Err(); err != nil {
			return i, fmt.Errorf("migration %s: %w", name, err)
		}

		_, err = db.Collection(collection).InsertOne(ctx, record{
			Name:      name,
			AppliedAt: time.Now().UTC(),
		})
		if err != nil {
			return i, fmt.Errorf("record migration %s: %w", name, err)
		}

		log.Info("applied schema migration", zap.String("migration", name))
	}
	return len(pending), nil
}

// loadCommand parses a migration file into a command document. The file
// is decoded into an ordered bson.D because MongoDB commands are
// order-sensitive (the command name must be the first key).
func loadCommand(fsys fs.FS, name string) (bson.D, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	var cmd bson.D
	if err := bson.UnmarshalExtJSON(data, false, &cmd); err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	if len(cmd) == 0 {
		return nil, fmt.Errorf("empty command document")
	}
	return cmd, nil
}
