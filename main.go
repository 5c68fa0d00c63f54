package main

import (
	"github.com/einkreativername/brightmiss/config"
	"github.com/einkreativername/brightmiss/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
