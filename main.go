package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pagemark/pagemark/config"
	"github.com/pagemark/pagemark/document"
	"github.com/pagemark/pagemark/fonts"
	"github.com/pagemark/pagemark/log"
	"github.com/pagemark/pagemark/session"
	"github.com/pagemark/pagemark/shell"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable trace logging")
	cfgPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	log.InitLog(*verbose)

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <document.pdf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Error.Println(err)
		os.Exit(1)
	}

	doc, err := document.Load(flag.Arg(0))
	if err != nil {
		log.Error.Println(err)
		os.Exit(1)
	}

	sess := session.New(doc, cfg)
	defer sess.Close()
	sess.UseLayout(fonts.NewContentAnalyzer(doc))

	// Layout analysis runs once per page in the background; probes issued
	// before a page is done fall back to the configured style.
	go func() {
		if err := sess.WarmLayout(context.Background()); err != nil {
			log.Trace.Println("layout warmup:", err)
		}
	}()

	shell.Run(sess)
}
