package main

import (
	"flag"
	"log"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/models"
)

func main() {
	service := flag.String("service", "http", "run a service")
	env := flag.String("env", ".env", "optional environment file")
	flag.Parse()

	config.Load(*env)
	setupBugsnag()

	db := durable.NewDatabase(durable.Latency{Scale: config.LatencyScale})
	err := models.Seed(db, config.PropertiesFixture, config.SavedPropertiesFixture)
	if err != nil {
		log.Panicln(err)
	}

	switch *service {
	case "http":
		err := StartServer(db)
		if err != nil {
			log.Println(err)
		}
	default:
		log.Println("unknown service", *service)
	}
}
