package app

// Command uygulamanın başlatma modunu temsil eder.
type Command string

const (
	// CommandServe API sunucusu modudur.
	CommandServe Command = "serve"
	// CommandWorker alarm bildirim worker'ı modudur.
	CommandWorker Command = "worker"
	// CommandMigrate veritabanı migration'larını uygular.
	CommandMigrate Command = "migrate"
	// CommandHealthcheck çalışan sunucuya sağlık isteği atar.
	// Distroless imajlarda Docker healthcheck için kullanılır.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand komut satırı argümanlarından alt komutu çözer.
// Boş veya bilinmeyen argüman serve modunu seçer.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "worker":
		return CommandWorker
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
