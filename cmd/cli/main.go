package main

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/config/di"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/helper"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/olivere/elastic/v7"
	sdi "github.com/sarulabs/di/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"os"
)

var (
	container sdi.Container
	market    marketplace.Service
	esIndex   elastic_search.Index
)

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	market = container.Get("marketplace").(marketplace.Service)
	esIndex = container.Get("elastic").(elastic_search.Index)

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List an asset for sale",
				Action: listItem,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "caller", Required: true},
				},
			},
			{
				Name:   "buy",
				Usage:  "Buy a listed asset",
				Action: buyItem,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
					&cli.Uint64Flag{Name: "payment", Required: true},
					&cli.StringFlag{Name: "caller", Required: true},
				},
			},
			{
				Name:   "cancel",
				Usage:  "Cancel an active listing",
				Action: cancelListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
					&cli.StringFlag{Name: "caller", Required: true},
				},
			},
			{
				Name:   "update",
				Usage:  "Update the price of an active listing",
				Action: updateListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "caller", Required: true},
				},
			},
			{
				Name:   "withdraw",
				Usage:  "Withdraw accumulated proceeds",
				Action: withdrawProceeds,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true},
				},
			},
			{
				Name:   "listing",
				Usage:  "Show a listing",
				Action: getListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
				},
			},
			{
				Name:   "proceeds",
				Usage:  "Show the withdrawable proceeds of a seller",
				Action: getProceeds,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Required: true},
				},
			},
			{
				Name:   "actions",
				Usage:  "Show recent marketplace actions",
				Action: getActions,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 25},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("CLI action failed")
	}
}

func listItem(c *cli.Context) error {
	contract, caller, err := addresses(c)
	if err != nil {
		return err
	}

	return market.ListItem(contract, c.Uint64("token"), c.Uint64("price"), caller)
}

func buyItem(c *cli.Context) error {
	contract, caller, err := addresses(c)
	if err != nil {
		return err
	}

	return market.BuyItem(contract, c.Uint64("token"), caller, c.Uint64("payment"))
}

func cancelListing(c *cli.Context) error {
	contract, caller, err := addresses(c)
	if err != nil {
		return err
	}

	return market.CancelListing(contract, c.Uint64("token"), caller)
}

func updateListing(c *cli.Context) error {
	contract, caller, err := addresses(c)
	if err != nil {
		return err
	}

	return market.UpdateListing(contract, c.Uint64("token"), c.Uint64("price"), caller)
}

func withdrawProceeds(c *cli.Context) error {
	caller, err := helper.NormaliseAddress(c.String("caller"))
	if err != nil {
		return err
	}

	return market.WithdrawProceeds(caller)
}

func getListing(c *cli.Context) error {
	contract, err := helper.NormaliseAddress(c.String("contract"))
	if err != nil {
		return err
	}

	listing := market.GetListing(contract, c.Uint64("token"))

	return printJson(listing)
}

func getProceeds(c *cli.Context) error {
	address, err := helper.NormaliseAddress(c.String("address"))
	if err != nil {
		return err
	}

	fmt.Println(market.GetProceeds(address))

	return nil
}

func getActions(c *cli.Context) error {
	result, err := esIndex.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(elastic.NewMatchAllQuery()).
		Sort("timestamp", false).
		Size(c.Int("size")).
		Do(context.Background())
	if err != nil {
		return err
	}

	for _, hit := range result.Hits.Hits {
		fmt.Println(string(hit.Source))
	}

	return nil
}

func addresses(c *cli.Context) (string, string, error) {
	contract, err := helper.NormaliseAddress(c.String("contract"))
	if err != nil {
		return "", "", err
	}

	caller, err := helper.NormaliseAddress(c.String("caller"))
	if err != nil {
		return "", "", err
	}

	return contract, caller, nil
}

func printJson(v interface{}) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(body))

	return nil
}
