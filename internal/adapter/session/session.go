package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/schema"
	"github.com/redis/go-redis/v9"
)

const (
	cartKey     = "cart"
	compareKey  = "compareList"
	wishlistKey = "wishlist"
)

var (
	_ port.CartStorage     = (*Storage)(nil)
	_ port.CompareStorage  = (*Storage)(nil)
	_ port.WishlistStorage = (*Storage)(nil)
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type snapshots struct {
	cart     schema.Snapshot
	compare  schema.Snapshot
	wishlist schema.Snapshot
}

// A Storage keeps the cart, compare list and wishlist of a session in redis.
//
// Each value is a whole versioned snapshot, every save replaces it.
type Storage struct {
	rdb       redisClient
	ttl       time.Duration
	snapshots snapshots
}

func NewStorage(rdb redisClient, ttl time.Duration) Storage {
	return Storage{
		rdb: rdb,
		ttl: ttl,
		snapshots: snapshots{
			cart:     schema.CartSnapshotV1(),
			compare:  schema.CompareSnapshotV1(),
			wishlist: schema.WishlistSnapshotV1(),
		},
	}
}

func (s Storage) LoadCart(
	ctx context.Context, sessionID string,
) ([]domain.CartLine, error) {
	const op = "Storage.LoadCart"

	var v schema.CartV1
	if err := s.load(ctx, sessionID, cartKey, s.snapshots.cart, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]domain.CartLine, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = domain.CartLine{
			ID:            l.ID,
			Name:          l.Name,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			ImageRef:      l.ImageRef,
			CategoryLabel: l.CategoryLabel,
			Description:   l.Description,
		}
	}
	return lines, nil
}

func (s Storage) SaveCart(
	ctx context.Context, sessionID string, lines []domain.CartLine,
) error {
	const op = "Storage.SaveCart"

	v := schema.CartV1{Lines: make([]schema.CartLineV1, len(lines))}
	for i, l := range lines {
		v.Lines[i] = schema.CartLineV1{
			ID:            l.ID,
			Name:          l.Name,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			ImageRef:      l.ImageRef,
			CategoryLabel: l.CategoryLabel,
			Description:   l.Description,
		}
	}

	if err := s.save(ctx, sessionID, cartKey, s.snapshots.cart, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Storage) LoadCompare(
	ctx context.Context, sessionID string,
) ([]domain.CompareEntry, error) {
	const op = "Storage.LoadCompare"

	var v schema.CompareV1
	if err := s.load(ctx, sessionID, compareKey, s.snapshots.compare, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	es := make([]domain.CompareEntry, len(v.Entries))
	for i, e := range v.Entries {
		es[i] = domain.CompareEntry(e)
	}
	return es, nil
}

func (s Storage) SaveCompare(
	ctx context.Context, sessionID string, es []domain.CompareEntry,
) error {
	const op = "Storage.SaveCompare"

	v := schema.CompareV1{Entries: make([]schema.CompareEntryV1, len(es))}
	for i, e := range es {
		v.Entries[i] = schema.CompareEntryV1(e)
	}

	if err := s.save(ctx, sessionID, compareKey, s.snapshots.compare, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Storage) DeleteCompare(ctx context.Context, sessionID string) error {
	const op = "Storage.DeleteCompare"

	if err := s.rdb.Del(ctx, key(sessionID, compareKey)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Storage) LoadWishlist(
	ctx context.Context, sessionID string,
) ([]domain.WishlistEntry, error) {
	const op = "Storage.LoadWishlist"

	var v schema.WishlistV1
	if err := s.load(ctx, sessionID, wishlistKey, s.snapshots.wishlist, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	es := make([]domain.WishlistEntry, len(v.Entries))
	for i, e := range v.Entries {
		es[i] = domain.WishlistEntry(e)
	}
	return es, nil
}

func (s Storage) SaveWishlist(
	ctx context.Context, sessionID string, es []domain.WishlistEntry,
) error {
	const op = "Storage.SaveWishlist"

	v := schema.WishlistV1{Entries: make([]schema.WishlistEntryV1, len(es))}
	for i, e := range es {
		v.Entries[i] = schema.WishlistEntryV1(e)
	}

	if err := s.save(ctx, sessionID, wishlistKey, s.snapshots.wishlist, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// load decodes the stored snapshot into v. A missing key leaves v untouched.
func (s Storage) load(
	ctx context.Context, sessionID, name string, snap schema.Snapshot, v any,
) error {
	data, err := s.rdb.Get(ctx, key(sessionID, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return snap.Unmarshal(data, v)
}

func (s Storage) save(
	ctx context.Context, sessionID, name string, snap schema.Snapshot, v any,
) error {
	data, err := snap.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID, name), data, s.ttl).Err()
}

func key(sessionID, name string) string {
	return "session:" + sessionID + ":" + name
}

// A Client owns the redis connection used by [Storage].
type Client struct {
	*redis.Client
}

func NewClient(ctx context.Context, redisURL string) (Client, error) {
	const op = "session.NewClient"
	log := slog.With("op", op)

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return Client{}, fmt.Errorf("%s: invalid redis URL: %w", op, err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return Client{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}
	log.Info("redis is available")
	return Client{rdb}, nil
}

func (c Client) Close() {
	const op = "Client.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := c.Client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
