// cmd/main.go
package main

import (
	"github.com/GuilhermeTBedin/backend-controle-financeiro/app"
)

// @title           Personal Finance API
// @version         1.0
// @description     Backend for personal finance tracking: authentication with access/refresh tokens and CRUD over financial transactions.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
