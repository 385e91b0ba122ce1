package testdata

// Config is a client configuration file exercising every setting.
var Config = []byte(`
url = "https://api.devnet.solana.com"
keypair_path = "~/.config/solana/id.json"
program_id = "pytd2yyk641x7ak7mkaasSJVXh6YYZnC7wTmtgAyxz9"
commitment = "finalized"
timeout = "30s"
vault_address = "https://vault:8200"
vault_token = "abc-def-456-789"
aws_region = "us-east-1"
aws_access_key = "abcdef"
aws_secret_key = "omg123"
pushgateway = "http://pushgateway:9091"
`)

// PartialConfig only names the endpoint.
var PartialConfig = []byte(`
url = "http://127.0.0.1:8899"
`)
