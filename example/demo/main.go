// Demo wires the full coinhouse stack against the in-memory ledger engine
// and walks through a small scenario: seeding the catalog, deposits,
// a withdrawal, an overdraft rejection, share activation, and the balance
// and statement queries.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arelgame/coinhouse/banking/access"
	"github.com/arelgame/coinhouse/banking/command/depositgold"
	"github.com/arelgame/coinhouse/banking/command/joinaccount"
	"github.com/arelgame/coinhouse/banking/command/openaccount"
	"github.com/arelgame/coinhouse/banking/command/removeholder"
	"github.com/arelgame/coinhouse/banking/command/withdrawgold"
	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/banking/definitions"
	"github.com/arelgame/coinhouse/banking/documents"
	"github.com/arelgame/coinhouse/banking/query/accountbalance"
	"github.com/arelgame/coinhouse/banking/query/accountstatement"
	"github.com/arelgame/coinhouse/dispatch"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/memoryengine"
)

const defaultCatalog = `
coinhouses:
  - tag: goldleaf
    settlement: Cordor
    engine_id: ch_goldleaf_001
  - tag: ironvault
    settlement: Brogendenstein
    engine_id: ch_ironvault_001
`

type demoDirectory struct {
	names map[ledger.PersonaID]string
}

func (d demoDirectory) Resolve(_ context.Context, persona ledger.PersonaID) (documents.Identity, error) {
	name, ok := d.names[persona]
	if !ok {
		name = "Unknown Persona"
	}

	return documents.Identity{Key: persona.Key(), DisplayName: name}, nil
}

func main() {
	catalogPath := flag.String("catalog", "", "path to a coinhouse catalog YAML file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := run(context.Background(), logger, *catalogPath); err != nil {
		logger.Error("demo failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, catalogPath string) error {
	coinhouses, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	store := memoryengine.NewStore(memoryengine.WithLogger(logger))
	if err = store.Seed(coinhouses...); err != nil {
		return err
	}

	bus := dispatch.NewEventBus(dispatch.WithBusLogger(logger))
	subscribeAuditLog(bus, logger)

	dispatcher, err := dispatch.NewCommandDispatcher(bus, dispatch.WithDispatcherLogger(logger))
	if err != nil {
		return err
	}

	if err = registerHandlers(dispatcher, store); err != nil {
		return err
	}

	queries := dispatch.NewQueryDispatcher()
	if err = dispatch.RegisterQueryHandler(queries, accountbalance.NewQueryHandler(store)); err != nil {
		return err
	}
	if err = dispatch.RegisterQueryHandler(queries, accountstatement.NewQueryHandler(store)); err != nil {
		return err
	}

	return runScenario(ctx, logger, dispatcher, queries, coinhouses[0].Tag)
}

func loadCatalog(path string) ([]ledger.Coinhouse, error) {
	if path != "" {
		return definitions.LoadFile(path)
	}

	return definitions.Load(strings.NewReader(defaultCatalog))
}

func registerHandlers(dispatcher *dispatch.CommandDispatcher, store *memoryengine.Store) error {
	if err := dispatch.RegisterCommandHandler[depositgold.Command](dispatcher, depositgold.NewCommandHandler(store)); err != nil {
		return err
	}

	if err := dispatch.RegisterCommandHandler[withdrawgold.Command](dispatcher, withdrawgold.NewCommandHandler(store)); err != nil {
		return err
	}

	if err := dispatch.RegisterCommandHandler[openaccount.Command](dispatcher, openaccount.NewCommandHandler(store)); err != nil {
		return err
	}

	if err := dispatch.RegisterCommandHandler[joinaccount.Command](dispatcher, joinaccount.NewCommandHandler(store)); err != nil {
		return err
	}

	return dispatch.RegisterCommandHandler[removeholder.Command](dispatcher, removeholder.NewCommandHandler(store))
}

func subscribeAuditLog(bus *dispatch.EventBus, logger *slog.Logger) {
	dispatch.Subscribe(bus, func(_ context.Context, event core.GoldDeposited) error {
		logger.Info("audit: gold deposited",
			"coinhouse", event.Coinhouse.String(), "persona", event.Persona.String(), "amount", event.Amount)
		return nil
	})

	dispatch.Subscribe(bus, func(_ context.Context, event core.GoldWithdrawn) error {
		logger.Info("audit: gold withdrawn",
			"coinhouse", event.Coinhouse.String(), "persona", event.Persona.String(), "amount", event.Amount)
		return nil
	})

	dispatch.Subscribe(bus, func(_ context.Context, event core.HolderJoined) error {
		logger.Info("audit: holder joined",
			"account", event.Account.String(), "holder", event.Holder.String(), "role", string(event.Role))
		return nil
	})

	dispatch.Subscribe(bus, func(_ context.Context, event dispatch.CommandExecuted) error {
		logger.Debug("audit: command executed", "command_type", event.Command.CommandType())
		return nil
	})
}

func runScenario(
	ctx context.Context,
	logger *slog.Logger,
	dispatcher *dispatch.CommandDispatcher,
	queries *dispatch.QueryDispatcher,
	coinhouse ledger.CoinhouseTag,
) error {
	hero := ledger.NewCharacterPersona(uuid.New())
	companion := ledger.NewCharacterPersona(uuid.New())
	now := time.Now()

	commands := []dispatch.Command{
		depositgold.BuildCommand(hero, coinhouse, 1000, "quest reward", "Arden Vale", now),
		depositgold.BuildCommand(hero, coinhouse, 250, "sold a sword", "Arden Vale", now),
		withdrawgold.BuildCommand(hero, coinhouse, 400, "armor repairs", now),
		withdrawgold.BuildCommand(hero, coinhouse, 5000, "wishful thinking", now),
	}

	batch, err := dispatcher.DispatchBatch(ctx, commands)
	if err != nil {
		return err
	}

	logger.Info("scenario batch finished",
		"total", batch.TotalCount, "succeeded", batch.SuccessCount, "all_succeeded", batch.AllSucceeded)

	// hand the companion an authorized-user share
	directory := demoDirectory{names: map[ledger.PersonaID]string{
		hero:      "Arden Vale",
		companion: "Mira Thorn",
	}}
	shares := documents.NewService(dispatcher, directory, documents.WithServiceLogger(logger))

	share := documents.BuildDocument(
		coinhouse,
		ledger.AccountIDFor(hero, coinhouse),
		ledger.HolderIndividual,
		ledger.RoleAuthorizedUser,
		"personal",
		hero,
	)

	activation, err := shares.Activate(ctx, share, companion, now)
	if err != nil {
		return err
	}

	logger.Info("share activation", "consumed", activation.Consumed, "message", activation.Message)

	balance, err := dispatch.DispatchQuery[accountbalance.AccountBalance](ctx, queries,
		accountbalance.BuildQuery(companion, hero, coinhouse, access.Membership{}))
	if err != nil {
		return err
	}

	logger.Info("balance as seen by the companion",
		"debit", balance.Debit, "holders", len(balance.Holders), "access", balance.Access.String())

	statement, err := dispatch.DispatchQuery[accountstatement.AccountStatement](ctx, queries,
		accountstatement.BuildQuery(hero, hero, coinhouse, access.Membership{}, 10))
	if err != nil {
		return err
	}

	for _, entry := range statement.Entries {
		logger.Info("statement entry", "memo", entry.Memo, "amount", entry.Amount)
	}

	return nil
}
