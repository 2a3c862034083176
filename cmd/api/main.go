package main

import "github.com/rafabene/adboard-backend/cmd/api/commands"

// @title           Adboard API
// @version         1.0
// @description     Classificados: anúncios com imagem, comentários e perfis de usuário.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.basic  BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	commands.Execute()
}
