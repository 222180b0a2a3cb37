// internal/app/system/indexes/indexes.go

// Package indexes reconciles each collection's indexes at startup.
// Rather than blindly calling CreateMany (which fails when an index
// exists under a different name or with different options), EnsureAll
// compares what exists against what is desired and drops/recreates
// only where they disagree. Every run against an up-to-date database
// is a no-op.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll reconciles the index set of every adminhub collection.
// Problems are aggregated so one bad collection does not hide the rest;
// any problem fails startup.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	for _, set := range collectionSets() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models, log); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func collectionSets() []indexSet {
	return []indexSet{
		{"users", []mongo.IndexModel{
			// One account per email, globally.
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
			// Admin list pages: role/status filter, name-prefix search,
			// stable _id tiebreak.
			{
				Keys: bson.D{
					{Key: "role", Value: 1},
					{Key: "status", Value: 1},
					{Key: "full_name_ci", Value: 1},
					{Key: "_id", Value: 1},
				},
				Options: options.Index().SetName("idx_users_role_status_fullnameci_id"),
			},
			// Module-scoped operator lookups and cascade renames.
			{
				Keys:    bson.D{{Key: "modules", Value: 1}},
				Options: options.Index().SetName("idx_users_modules"),
			},
		}},
		{"modules", []mongo.IndexModel{
			// The derived slug is the module's identity across products,
			// users, and metrics.
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_modules_name"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "display_name", Value: 1}},
				Options: options.Index().SetName("idx_modules_status_display"),
			},
		}},
		{"products", []mongo.IndexModel{
			// No duplicate product names within a module (case-folded).
			{
				Keys:    bson.D{{Key: "module", Value: 1}, {Key: "name_ci", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_products_module_nameci"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("idx_products_category"),
			},
			// Catalog queries filter on visibility then status.
			{
				Keys:    bson.D{{Key: "catalog_visible", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_products_catalog_status"),
			},
		}},
		{"download_requests", []mongo.IndexModel{
			// Review queue: newest first within a status.
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_requests_status_created"),
			},
			{
				Keys:    bson.D{{Key: "module", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_requests_module_created"),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_requests_email"),
			},
		}},
		{"metrics", []mongo.IndexModel{
			// Summary aggregations group by name then window on time.
			{
				Keys:    bson.D{{Key: "name", Value: 1}, {Key: "recorded_at", Value: -1}},
				Options: options.Index().SetName("idx_metrics_name_recorded"),
			},
			{
				Keys:    bson.D{{Key: "module", Value: 1}},
				Options: options.Index().SetName("idx_metrics_module"),
			},
		}},
		{"content", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "title_ci", Value: 1}},
				Options: options.Index().SetName("idx_content_titleci"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_content_status_created"),
			},
		}},
		{"tasks", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_tasks_status_created"),
			},
			{
				Keys:    bson.D{{Key: "assignee_id", Value: 1}},
				Options: options.Index().SetName("idx_tasks_assignee"),
			},
		}},
		{"notifications", []mongo.IndexModel{
			// Per-user feed, newest first.
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_notifications_user_created"),
			},
		}},
	}
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

// keySig renders a key document into a comparable signature like
// "module:1, name_ci:1".
func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolOf(p *bool) bool { return p != nil && *p }

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	existing := make(map[string]existingIndex) // key signature -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, cur.Err()
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, log *zap.Logger) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := boolOf(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if boolOf(ex.Unique) == unique && ex.Name == name {
				continue // already as desired
			}
			// Same keys under a different name or uniqueness: replace.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s: %v", name, ex.Name, err))
				continue
			}
			log.Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
			)
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on (%s), duplicates present", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		log.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
		)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// isDuplicateKeyErr detects E11000 across driver error shapes so the
// operator gets "duplicates present" instead of a raw driver error.
func isDuplicateKeyErr(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "e11000") || strings.Contains(s, "duplicate key")
}
