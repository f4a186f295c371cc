package main

import (
	"flag"
	"fmt"

	"ShopAssistAI/app/services/advisor/internal/config"
	"ShopAssistAI/app/services/advisor/internal/handler"
	"ShopAssistAI/app/services/advisor/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/advisor.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())
	ctx := svc.NewServiceContext(c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting advisor server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
