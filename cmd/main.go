package main

import "github.com/adanyl0v/go-todo-lists/internal/app"

func main() {
	a := app.New()
	a.InitDefaultLogger()
	a.MustReadEnv()
	a.MustInitApplicationLogger()

	a.MustConnectPostgres()
	defer a.DisconnectPostgres()
	a.MustEnsureSchema()

	a.MustListenAndServeHTTP()
}
