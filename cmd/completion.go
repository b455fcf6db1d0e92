package cmd

import (
	"cmp"
	"context"
	"flag"
	"os"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/docs"
	"github.com/etnz/gplocal/export"
	"github.com/etnz/gplocal/kv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictProducts completes -p with the ids of the stored products.
var predictProducts = complete.PredictFunc(func(prefix string) []string {
	cfg, err := settings()
	if err != nil || !storeExists(cfg.Store) {
		return nil
	}
	ctx := context.Background()
	store, err := OpenStore(ctx)
	if err != nil {
		return nil
	}
	defer store.Close()
	return productIDs(store.Load(ctx))
})

// storeExists reports whether opening the store would find it rather than
// create it. Local stores are checked on disk, remote ones are assumed to exist.
func storeExists(cfg kv.Config) bool {
	var path string
	switch cfg.Driver {
	case kv.DriverMemory:
		return false
	case kv.DriverFS, "":
		path = cmp.Or(cfg.Path, kv.DefaultDir)
	case kv.DriverSQLite:
		path = cmp.Or(cfg.Path, kv.DefaultSQLitePath)
	default:
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

func productIDs(d gplocal.Document) []string {
	ids := make([]string, 0, len(d.Products))
	for _, p := range d.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func predictSections() predict.Set {
	var s predict.Set
	for _, sec := range gplocal.Sections {
		s = append(s, sec.String())
	}
	return s
}

var predictTopics = complete.PredictFunc(func(prefix string) []string {
	topics, _ := docs.GetAllTopics()
	return topics
})

func predictFormats() predict.Set {
	var s predict.Set
	for _, f := range export.Formats {
		s = append(s, string(f))
	}
	return s
}

// globalFlags returns the predictors of the flags registered on flag.CommandLine.
func globalFlags() map[string]complete.Predictor {
	var drivers predict.Set
	for _, d := range kv.Drivers {
		drivers = append(drivers, string(d))
	}
	flags := map[string]complete.Predictor{
		"store":      drivers,
		"store-path": predict.Files("*"),
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if _, ok := flags[f.Name]; !ok {
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

// Completion returns the completion tree of the gpl command.
// A main package calls its Complete method before parsing flags.
func Completion() *complete.Command {
	rowFlags := func(extra map[string]complete.Predictor) map[string]complete.Predictor {
		m := map[string]complete.Predictor{
			"p":      predictProducts,
			"s":      predictSections(),
			"date":   predict.Something,
			"name":   predict.Something,
			"weight": predict.Something,
			"price":  predict.Something,
			"type":   predict.Set{gplocal.DefaultCostType},
			"amount": predict.Something,
			"desc":   predict.Something,
		}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}
	product := map[string]complete.Predictor{"p": predictProducts}

	return &complete.Command{
		Flags: globalFlags(),
		Sub: map[string]*complete.Command{
			"products":    {Flags: map[string]complete.Predictor{"q": predict.Something}},
			"add-product": {Args: predict.Something},
			"show":        {Flags: product},
			"add":         {Flags: rowFlags(nil)},
			"edit":        {Flags: rowFlags(map[string]complete.Predictor{"id": predict.Something})},
			"rm": {Flags: map[string]complete.Predictor{
				"p":  predictProducts,
				"s":  predictSections(),
				"id": predict.Something,
			}},
			"summary": {Flags: product},
			"charts":  {Flags: map[string]complete.Predictor{"p": predictProducts, "json": predict.Nothing}},
			"export": {Flags: map[string]complete.Predictor{
				"f": predictFormats(),
				"o": predict.Files("*"),
			}},
			"import":   {Args: predict.Files("*.json")},
			"settings": {Flags: map[string]complete.Predictor{"dark-mode": predict.Set{"system", "light", "dark"}}},
			"topic":    {Args: predictTopics},
		},
	}
}
