// Command bwfake serves the in-memory fake daemon, for trying bwcli
// without a real vault.
package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"BwClient/internal/daemontest"
	"BwClient/internal/model"
	"BwClient/internal/secret"
)

func main() {
	addr := flag.String("addr", "localhost:8087", "listen address")
	password := flag.String("password", "password", "master password of the fake vault")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	d := daemontest.New(*password, daemontest.WithLogger(sugar))
	seed(d)

	sugar.Infow("Starting fake daemon", "addr", *addr)
	if err := http.ListenAndServe(*addr, d.Handler()); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

func seed(d *daemontest.Daemon) {
	folder := d.AddFolder("Personal")
	user, note := "demo", "created by bwfake"
	d.AddItem(&model.LoginItem{
		ItemBase: model.ItemBase{Name: "example.org", FolderID: &folder, Notes: &note},
		Login: model.LoginData{
			URIs:     []model.LoginURI{{URI: "https://example.org/login"}},
			Username: &user,
			Password: secret.Ptr("correct horse"),
		},
	})
	d.AddItem(&model.SecureNoteItem{ItemBase: model.ItemBase{Name: "wifi", Notes: &note}})
	org := d.AddOrganization("Example Org")
	d.AddCollection(org, "Shared")
}
