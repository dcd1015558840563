// Package main provides the ml-dsa-cli command line interface for ML-DSA operations.
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/core"
	"github.com/BackendStack21/ml-dsa-go/sign"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

const (
	version = "1.0.0"
	appName = "ml-dsa-cli"
)

// OutputFormat represents the output format for serialization
type OutputFormat string

const (
	FormatHex    OutputFormat = "hex"
	FormatBase64 OutputFormat = "base64"
)

// CLIConfig holds CLI configuration
type CLIConfig struct {
	SecurityLevel mldsa.SecurityLevel
	// LevelSet is true when --level was given explicitly.
	LevelSet     bool
	OutputFormat OutputFormat
	OutputFile   string
	InputFile    string
	Verbose      bool
	Timing       bool
}

// KeyPairExport represents an exported key pair. SecretKey is empty in
// public-only exports.
type KeyPairExport struct {
	SecurityLevel string `json:"security_level"`
	PublicKey     string `json:"public_key"`
	SecretKey     string `json:"secret_key,omitempty"`
	CreatedAt     string `json:"created_at"`
	KeyHMAC       string `json:"key_hmac,omitempty"` // HMAC for integrity verification
}

// SignatureExport represents an exported signature
type SignatureExport struct {
	SecurityLevel string `json:"security_level"`
	Message       string `json:"message"`
	Context       string `json:"context,omitempty"`
	PreHash       string `json:"prehash,omitempty"`
	Signature     string `json:"signature"`
	Attempts      int    `json:"attempts,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("ML-DSA library version %s\n", mldsa.Version)
	case "keygen":
		cmdKeygen(os.Args[2:])
	case "sign":
		cmdSign(os.Args[2:])
	case "verify":
		cmdVerify(os.Args[2:])
	case "kat":
		cmdKAT(os.Args[2:])
	case "benchmark":
		handleBenchmark(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - ML-DSA (FIPS 204) Post-Quantum Signature CLI

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    keygen      Generate a new key pair
    sign        Sign a message
    verify      Verify a signature
    kat         Replay a known-answer test file
    benchmark   Run performance benchmarks
    version     Show version information
    help        Show this help message

OPTIONS:
    --level <44|65|87>        Parameter set (default: 65, or the level stored in the key file)
    --output <file>           Output file (default: stdout)
    --format <hex|base64>     Encoding of binary fields (default: base64)
    --seed <hex>              32-byte keygen seed (keygen only)
    --message <text>          Message to sign or verify
    --input <file>            Read the message from a file (default: stdin)
    --context <text>          Context string, at most 255 bytes
    --prehash <alg>           HashML-DSA with SHA2-256, SHA3-512, SHAKE-128, ...
    --deterministic           Sign with rnd = 0^32
    --timing                  Show timing information
    --verbose                 Verbose output

EXAMPLES:
    %s keygen --level 44 --output kp.json
    %s sign --secret-key kp.json --message "Hello" --output sig.json
    %s verify --public-key kp.json --signature sig.json
    %s kat --file ml_dsa_44_keygen.acvp.kat
    %s benchmark --level 87 --iterations 100 --chart bench.html
`, appName, appName, appName, appName, appName, appName, appName)
}

// generateKeyHMAC computes HMAC-SHA256 of key material for basic integrity verification.
// It only detects accidental corruption: the public key is the HMAC key, so anyone can
// forge a matching tag.
func generateKeyHMAC(publicKey string, secretKey string) string {
	h := hmac.New(sha256.New, []byte(publicKey))
	h.Write([]byte(secretKey))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// ============================================================================
// Key generation
// ============================================================================

func cmdKeygen(args []string) {
	config := parseConfig(args)
	seedHex := getArg(args, "--seed", "-s")

	var seed []byte
	if seedHex != "" {
		var err error
		seed, err = hex.DecodeString(seedHex)
		if err != nil {
			fail("invalid --seed: %v", err)
		}
	} else {
		var err error
		seed, err = utils.SecureRandomBytes(mldsa.SeedSize)
		if err != nil {
			fail("reading randomness: %v", err)
		}
	}
	defer utils.Zeroize(seed)

	start := time.Now()
	pkBytes, skBytes, err := sign.KeyGen(config.SecurityLevel, seed)
	elapsed := time.Since(start)
	if err != nil {
		fail("generating key pair: %v", err)
	}
	defer utils.Zeroize(skBytes)

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Key generation took: %v\n", elapsed)
	}

	export := KeyPairExport{
		SecurityLevel: string(config.SecurityLevel),
		PublicKey:     encodeBytes(pkBytes, config.OutputFormat),
		SecretKey:     encodeBytes(skBytes, config.OutputFormat),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	export.KeyHMAC = generateKeyHMAC(export.PublicKey, export.SecretKey)

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fail("marshaling output: %v", err)
	}
	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Generated %s key pair\n", config.SecurityLevel)
		fmt.Fprintf(os.Stderr, "Public key size: %d bytes\n", len(pkBytes))
		fmt.Fprintf(os.Stderr, "Secret key size: %d bytes\n", len(skBytes))
	}
}

// ============================================================================
// Signing and verification
// ============================================================================

func signOptions(args []string) *sign.Options {
	opts := &sign.Options{
		Context:       []byte(getArg(args, "--context", "-c")),
		Deterministic: hasFlag(args, "--deterministic", "-d"),
	}
	if name := getArg(args, "--prehash", "-p"); name != "" {
		ph, err := sign.ParsePreHash(name)
		if err != nil {
			fail("%v", err)
		}
		opts.PreHash = ph
	}
	if len(opts.Context) > mldsa.MaxContextSize {
		fail("%v", sign.ErrContextTooLong)
	}
	return opts
}

// readMessage returns --message, the --input file, or stdin, in that order.
func readMessage(args []string, config CLIConfig) []byte {
	if message := getArg(args, "--message", "-m"); message != "" {
		return []byte(message)
	}
	if config.InputFile != "" {
		data, err := readFileLimited(config.InputFile)
		if err != nil {
			fail("reading input file: %v", err)
		}
		return data
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, utils.MaxInputFileSize+1))
	if err != nil {
		fail("reading from stdin: %v", err)
	}
	if err := utils.CheckLength(len(data), utils.MaxInputFileSize); err != nil {
		fail("stdin: %v", err)
	}
	return data
}

func cmdSign(args []string) {
	config := parseConfig(args)
	skFile := getArg(args, "--secret-key", "-sk")
	if skFile == "" {
		fail("--secret-key is required")
	}
	opts := signOptions(args)

	level, skData, err := loadKeyFromFile(skFile, "secret_key", config)
	if err != nil {
		fail("loading secret key: %v", err)
	}
	defer utils.Zeroize(skData)
	params, err := core.GetParams(level)
	if err != nil {
		fail("%v", err)
	}
	sk, err := sign.DeserializeSecretKey(params, skData)
	if err != nil {
		fail("deserializing secret key: %v", err)
	}
	defer sk.Destroy()

	msgBytes := readMessage(args, config)

	start := time.Now()
	sig, attempts, err := sign.SignWithAttempts(sk, msgBytes, opts)
	elapsed := time.Since(start)
	if err != nil {
		fail("signing: %v", err)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Signing took: %v (%d attempts)\n", elapsed, attempts)
	}

	export := SignatureExport{
		SecurityLevel: string(level),
		Message:       encodeBytes(msgBytes, config.OutputFormat),
		Signature:     encodeBytes(sig, config.OutputFormat),
		Attempts:      attempts,
	}
	if len(opts.Context) > 0 {
		export.Context = encodeBytes(opts.Context, config.OutputFormat)
	}
	if opts.PreHash != sign.PreHashNone {
		export.PreHash = opts.PreHash.String()
	}

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fail("marshaling output: %v", err)
	}
	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Signature successful\n")
		fmt.Fprintf(os.Stderr, "Message size: %d bytes\n", len(msgBytes))
		fmt.Fprintf(os.Stderr, "Signature size: %d bytes\n", len(sig))
	}
}

func cmdVerify(args []string) {
	config := parseConfig(args)
	pkFile := getArg(args, "--public-key", "-pk")
	sigFile := getArg(args, "--signature", "-sig")
	if pkFile == "" || sigFile == "" {
		fail("--public-key and --signature are required")
	}

	level, pkData, err := loadKeyFromFile(pkFile, "public_key", config)
	if err != nil {
		fail("loading public key: %v", err)
	}
	params, err := core.GetParams(level)
	if err != nil {
		fail("%v", err)
	}
	pk, err := sign.DeserializePublicKey(params, pkData)
	if err != nil {
		fail("deserializing public key: %v", err)
	}

	opts := signOptions(args)
	var msgBytes []byte
	sigExport, sigBytes := loadSignatureFile(sigFile)
	switch {
	case getArg(args, "--message", "-m") != "" || config.InputFile != "":
		msgBytes = readMessage(args, config)
	case sigExport != nil && sigExport.Message != "":
		msgBytes, err = decodeString(sigExport.Message)
		if err != nil {
			fail("decoding message: %v", err)
		}
	default:
		fail("message is required (use --message, --input, or include in signature file)")
	}
	// Context and pre-hash recorded alongside the signature apply unless overridden.
	if sigExport != nil {
		if len(opts.Context) == 0 && sigExport.Context != "" {
			if opts.Context, err = decodeString(sigExport.Context); err != nil {
				fail("decoding context: %v", err)
			}
		}
		if opts.PreHash == sign.PreHashNone && sigExport.PreHash != "" {
			if opts.PreHash, err = sign.ParsePreHash(sigExport.PreHash); err != nil {
				fail("%v", err)
			}
		}
	}

	start := time.Now()
	verr := sign.CheckSignature(pk, msgBytes, sigBytes, opts)
	elapsed := time.Since(start)
	valid := verr == nil

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Verification took: %v\n", elapsed)
	}

	result := map[string]interface{}{
		"valid":          valid,
		"security_level": string(level),
		"message":        encodeBytes(msgBytes, config.OutputFormat),
	}
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fail("marshaling output: %v", err)
	}
	writeOutput(output, config.OutputFile)

	if valid {
		if config.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Signature is VALID\n")
		}
		os.Exit(0)
	}
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "✗ Signature is INVALID: %v\n", verr)
	}
	os.Exit(1)
}

// loadSignatureFile accepts a SignatureExport JSON document or a bare
// hex/base64 signature. The export is nil for bare signatures.
func loadSignatureFile(filename string) (*SignatureExport, []byte) {
	data, err := readFileLimited(filename)
	if err != nil {
		fail("reading signature file: %v", err)
	}
	var export SignatureExport
	if err := json.Unmarshal(data, &export); err == nil && export.Signature != "" {
		sig, err := decodeString(export.Signature)
		if err != nil {
			fail("decoding signature: %v", err)
		}
		return &export, sig
	}
	sig, err := decodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fail("unable to parse signature file format")
	}
	return nil, sig
}

// ============================================================================
// Utility Functions
// ============================================================================

func parseConfig(args []string) CLIConfig {
	config := CLIConfig{
		SecurityLevel: mldsa.MLDSA65,
		OutputFormat:  FormatBase64,
	}

	if level := getArg(args, "--level", "-l"); level != "" {
		parsed, err := core.ParseLevel(level)
		if err != nil {
			fail("invalid security level '%s'. Must be one of: 44, 65, 87", level)
		}
		config.SecurityLevel = parsed
		config.LevelSet = true
	}

	format := getArg(args, "--format", "-f")
	switch format {
	case "hex":
		config.OutputFormat = FormatHex
	case "base64":
		config.OutputFormat = FormatBase64
	case "":
		// No format specified, use default
	default:
		fail("invalid format '%s'. Must be one of: hex, base64", format)
	}

	config.OutputFile = getArg(args, "--output", "-o")
	config.InputFile = getArg(args, "--input", "-i")
	config.Verbose = hasFlag(args, "--verbose", "-v")
	config.Timing = hasFlag(args, "--timing", "-t")

	return config
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || args[i] == short {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

func encodeBytes(data []byte, format OutputFormat) string {
	if format == FormatHex {
		return hex.EncodeToString(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// decodeString accepts hex or base64. Hex is tried first since every hex
// string of length 4n is also valid base64.
func decodeString(s string) ([]byte, error) {
	if data, err := hex.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return nil, fmt.Errorf("unable to decode string")
}

func readFileLimited(filename string) ([]byte, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if err := utils.CheckLength(int(info.Size()), utils.MaxInputFileSize); err != nil {
		return nil, fmt.Errorf("input file too large: %d > %d bytes: %w", info.Size(), utils.MaxInputFileSize, err)
	}
	return os.ReadFile(filename)
}

// loadKeyFromFile reads keyField from a KeyPairExport, or a bare hex/base64
// key. The level comes from --level when given, then from the export, then
// from the key length.
func loadKeyFromFile(filename, keyField string, config CLIConfig) (mldsa.SecurityLevel, []byte, error) {
	data, err := readFileLimited(filename)
	if err != nil {
		return "", nil, err
	}

	var key []byte
	var stored string
	var export KeyPairExport
	if err := json.Unmarshal(data, &export); err == nil && export.PublicKey != "" {
		if export.KeyHMAC != "" && export.SecretKey != "" &&
			!hmac.Equal([]byte(export.KeyHMAC), []byte(generateKeyHMAC(export.PublicKey, export.SecretKey))) {
			return "", nil, fmt.Errorf("key file %s: integrity check failed", filename)
		}
		field := export.PublicKey
		if keyField == "secret_key" {
			field = export.SecretKey
		}
		if field == "" {
			return "", nil, fmt.Errorf("key file %s has no %s", filename, keyField)
		}
		if key, err = decodeString(field); err != nil {
			return "", nil, fmt.Errorf("failed to decode %s: %w", keyField, err)
		}
		stored = export.SecurityLevel
	} else if key, err = decodeString(strings.TrimSpace(string(data))); err != nil {
		return "", nil, fmt.Errorf("unable to parse file format")
	}

	switch {
	case config.LevelSet:
		return config.SecurityLevel, key, nil
	case stored != "":
		level, err := core.ParseLevel(stored)
		return level, key, err
	}
	for _, level := range core.Levels {
		params, _ := core.GetParams(level)
		if (keyField == "public_key" && len(key) == params.PublicKeySize()) ||
			(keyField == "secret_key" && len(key) == params.SecretKeySize()) {
			return level, key, nil
		}
	}
	return "", nil, fmt.Errorf("%s: %w: %d bytes matches no parameter set", keyField, utils.ErrInvalidLength, len(key))
}

func writeOutput(data []byte, filename string) {
	if filename == "" {
		fmt.Println(string(data))
		return
	}
	// Key material: owner read-write only.
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		fail("creating output file: %v", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		fail("writing output file: %v", err)
	}
	// Enforce permissions even if the file already existed or umask is permissive.
	if err := os.Chmod(filename, 0600); err != nil {
		fail("setting file permissions: %v", err)
	}
}
