package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

// Fetches block definition data from the PrismarineJS dataset so a
// registry JSON can be assembled without vendoring it.
func main() {
	var (
		base = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "base url")
		ver  = flag.String("version", "1.8", "data version")
		out  = flag.String("o", "./blockdata", "output dir path")
	)
	flag.Parse()

	if *out == "" {
		panic("output dir path required")
	}

	if *ver == "" {
		panic("version required")
	}

	path := fmt.Sprintf("%s/pc-%s", *out, *ver)

	if err := os.RemoveAll(path); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading block data %s", path)

	url := fmt.Sprintf("git::%s//data/pc/%s", *base, *ver)

	if err := get.Get(path, url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading block data %s", path)
}
