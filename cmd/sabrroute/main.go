// Command sabrroute loads a contact plan, routes a bundle through it,
// and prints the resulting path, following the teacher pack's
// urfave/cli-based CLI shape (a cli.App with a handful of cli.Command
// entries, each taking its own cli.Flag set) scaled down to this
// engine's single routing operation.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/katalvlaran/sabr-route/bundle"
	"github.com/katalvlaran/sabr-route/config"
	"github.com/katalvlaran/sabr-route/contactplan"
	_ "github.com/katalvlaran/sabr-route/contactplan/asabr"
	_ "github.com/katalvlaran/sabr-route/contactplan/ion"
	_ "github.com/katalvlaran/sabr-route/contactplan/tvgutil"
	"github.com/katalvlaran/sabr-route/metrics"
	"github.com/katalvlaran/sabr-route/multigraph"
	"github.com/katalvlaran/sabr-route/obslog"
	"github.com/katalvlaran/sabr-route/router"
	"github.com/katalvlaran/sabr-route/routestage"
	"github.com/katalvlaran/sabr-route/sabrtypes"
	"github.com/katalvlaran/sabr-route/suppress"
)

var (
	planFlag        = cli.StringFlag{Name: "plan", Usage: "path to the contact-plan document"}
	formatFlag      = cli.StringFlag{Name: "format", Usage: "contact-plan format: ion, tvgutil or asabr", Value: "ion"}
	configFlag      = cli.StringFlag{Name: "config", Usage: "path to a RouterConfig JSON file (optional)"}
	sourceFlag      = cli.IntFlag{Name: "source", Usage: "source node id"}
	destFlag        = cli.IntFlag{Name: "dest", Usage: "destination node id"}
	sizeFlag        = cli.Float64Flag{Name: "size", Usage: "bundle size", Value: 1}
	metricsAddrFlag = cli.StringFlag{Name: "metrics-addr", Usage: "address to serve /metrics on; empty disables it"}
)

func main() {
	app := cli.NewApp()
	app.Name = "sabrroute"
	app.Usage = "route a bundle through a schedule-aware contact plan"
	app.Commands = []cli.Command{routeCommand}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("sabrroute failed")
	}
}

var routeCommand = cli.Command{
	Name:  "route",
	Usage: "find and print a route for a single unicast bundle",
	Flags: []cli.Flag{planFlag, formatFlag, configFlag, sourceFlag, destFlag, sizeFlag, metricsAddrFlag},
	Action: func(c *cli.Context) error {
		log := obslog.New(nil, "cmd")

		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		if addr := c.String("metrics-addr"); addr != "" {
			go serveMetrics(addr, reg, log)
		}

		parser, ok := contactplan.Lookup(c.String("format"))
		if !ok {
			return cli.NewExitError(fmt.Sprintf("unknown contact-plan format %q", c.String("format")), 1)
		}

		f, err := os.Open(c.String("plan"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer f.Close()

		nodes, contacts, err := parser.Parse(f)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		mg, err := multigraph.Build(nodes, contacts)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		source := sabrtypes.NodeID(c.Int("source"))
		dest := sabrtypes.NodeID(c.Int("dest"))
		b, err := bundle.New(source, []sabrtypes.NodeID{dest}, 0, sabrtypes.Volume(c.Float64("size")), 0, sabrtypes.MaxDate)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		out, err := routeOnce(cfg, mg, b, source, dest)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		if out.Route == nil {
			m.IncRouteOutcome(string(cfg.Kind), "unreachable")
			log.Warn("no route found")
			fmt.Println("no route found")

			return nil
		}

		m.IncRouteOutcome(string(cfg.Kind), "routed")
		log.With(logrus.Fields{"call_id": out.CallID, "hops": out.Route.Hops, "arrival": out.Route.At}).Info("route found and committed")
		printRoute(out.Route)

		return nil
	},
}

// routeOnce builds the router cfg.Kind names and runs a single routing
// call at time zero with no exclusions, returning the same
// *router.RoutingOutput shape regardless of which strategy ran. A
// successful, reachable result has already been committed against
// mg's contact managers by the time this returns.
func routeOnce(cfg config.RouterConfig, mg *multigraph.Multigraph, b *bundle.Bundle, source, dest sabrtypes.NodeID) (*router.RoutingOutput, error) {
	dist, err := config.ResolveDistance(cfg.Distance)
	if err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case config.KindSPSN:
		r := router.NewSPSN(cfg.TreeCacheSize, dist, cfg.Parenting)
		r.MaxUnicastVolume = cfg.MaxUnicastVolume

		return r.Route(mg, b, source, dest, 0, nil)
	case config.KindCGR:
		r := router.NewCGR(dist, cfg.Parenting, suppress.FirstEnding{})

		return r.Route(mg, b, source, dest, 0)
	case config.KindVolCgr:
		r := router.NewVolCgr(dist, cfg.Parenting)

		return r.Route(mg, b, source, dest, 0)
	default:
		return nil, config.ErrUnknownRouterKind
	}
}

func loadConfig(path string) (config.RouterConfig, error) {
	if path == "" {
		return config.New()
	}
	f, err := os.Open(path)
	if err != nil {
		return config.RouterConfig{}, err
	}
	defer f.Close()

	return config.Decode(f)
}

func serveMetrics(addr string, reg *prometheus.Registry, log *obslog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.With(logrus.Fields{"addr": addr}).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.With(logrus.Fields{"err": err}).Error("metrics server stopped")
	}
}

// routeHop is the JSON-friendly view of one printed hop.
type routeHop struct {
	From sabrtypes.NodeID `json:"from"`
	To   sabrtypes.NodeID `json:"to"`
	At   sabrtypes.Date   `json:"at"`
}

func printRoute(dest *routestage.Stage) {
	var hops []routeHop
	for s := dest; s.Via != nil; s = s.Via.Parent {
		hops = append([]routeHop{{From: s.Via.Tx.ID, To: s.Via.Rx.ID, At: s.At}}, hops...)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(hops)
}
