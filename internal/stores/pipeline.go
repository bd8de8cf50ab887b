package stores

import (
	"context"
	"log"
	"time"

	"guardian-vault-api/internal/model"

	"golang.org/x/sync/errgroup"
)

// Loader runs one load cycle: the concurrent three-way fetch, per-record
// conversion, the optional ratings side channel and annotation reconciliation.
type Loader struct {
	accounts    AccountResolver
	source      StoreSource
	definitions DefinitionsProvider
	newItems    NewItemsApplier
	annotations AnnotationReconciler
	ratings     RatingFetcher
	processor   *Processor
	items       ItemBuilder
	catalog     *model.BucketCatalog
}

// LoaderConfig holds the collaborators of a Loader.
type LoaderConfig struct {
	Accounts    AccountResolver
	Source      StoreSource
	Definitions DefinitionsProvider
	Items       ItemBuilder
	NewItems    NewItemsApplier
	Annotations AnnotationReconciler
	// Ratings is optional; nil disables the review side channel.
	Ratings RatingFetcher
	Catalog *model.BucketCatalog
}

// NewLoader creates a loader.
func NewLoader(cfg LoaderConfig) *Loader {
	return &Loader{
		accounts:    cfg.Accounts,
		source:      cfg.Source,
		definitions: cfg.Definitions,
		newItems:    cfg.NewItems,
		annotations: cfg.Annotations,
		ratings:     cfg.Ratings,
		processor:   NewProcessor(cfg.Items),
		items:       cfg.Items,
		catalog:     cfg.Catalog,
	}
}

// DiscoverAccount resolves an account when none is selected. A nil account
// with nil error means no account exists: the cycle completes quietly.
func (l *Loader) DiscoverAccount(ctx context.Context) (*model.Account, error) {
	accounts, err := l.accounts.GetAvailableAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

// LoadCycle produces a complete store set for the account, or an error the
// stream downgrades at the cycle boundary. Partial sets are never returned.
func (l *Loader) LoadCycle(ctx context.Context, account model.Account) (*model.StoreSet, error) {
	started := time.Now()

	// Item identifiers are stable within one load, never across loads.
	l.items.ResetIdentity()

	var (
		defs *model.Definitions
		raw  []*model.RawStoreRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defs, err = l.definitions.FetchDefinitions(gctx)
		return err
	})
	g.Go(func() error {
		return l.newItems.ApplyDeltas(gctx, account)
	})
	g.Go(func() error {
		var err error
		raw, err = l.source.FetchRawStores(gctx, account)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lastPlayed := LastPlayedDate(raw)
	currencies := model.NewCurrencies()

	processed := make([]*model.ProcessedStore, len(raw))
	pg, pctx := errgroup.WithContext(ctx)
	for i, rec := range raw {
		i, rec := i, rec
		pg.Go(func() error {
			store, err := l.processor.Process(pctx, rec, defs, l.catalog, currencies, lastPlayed)
			if err != nil {
				return err
			}
			processed[i] = store
			return nil
		})
	}
	if err := pg.Wait(); err != nil {
		return nil, err
	}

	set := &model.StoreSet{
		Account:    account,
		Currencies: currencies.Snapshot(),
		LoadedAt:   time.Now().UTC(),
	}
	for _, store := range processed {
		if store != nil {
			set.Stores = append(set.Stores, store)
		}
	}

	if l.ratings != nil {
		go l.ratings.FetchRatings(set)
	}

	if err := l.annotations.Reconcile(ctx, set); err != nil {
		return nil, err
	}

	log.Printf("[Loader] Cycle for %s done in %v: %d stores, %d currencies",
		account.MembershipID, time.Since(started), len(set.Stores), len(set.Currencies))
	return set, nil
}
