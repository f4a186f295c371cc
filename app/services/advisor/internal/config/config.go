package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	ChatModel  ModelConf
	Catalog    CatalogConf
	Moderation ModerationConf
	Session    SessionConf

	LogConf logx.LogConf
}

type ModelConf struct {
	BaseUrl        string
	APIKey         string
	Model          string
	TimeoutSeconds int `json:",default=30"`
}

type CatalogConf struct {
	Path string `json:",default=etc/updated_laptop.csv"`
}

type ModerationConf struct {
	BlockedTerms []string `json:",optional"`
}

type SessionConf struct {
	TTLMinutes int `json:",default=60"`
}
