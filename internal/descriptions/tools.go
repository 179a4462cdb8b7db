package descriptions

// Tool names
const (
	CertificateAnalyze         = "certificate_analyze"
	CertificateValidate        = "certificate_validate"
	CertificateGeneratePack    = "certificate_generate_pack"
	CertificateSearchDirectory = "certificate_search_directory"
	CertificateBatchAnalyze    = "certificate_batch_analyze"
	CertificateServerInfo      = "certificate_server_info"
)

// Tool descriptions with practical examples and use cases

const (
	CertificateAnalyzeDescription = `Extract the owner, the vehicle plate and the prescribable fines from a certificate of unpaid traffic fines.

**When to use:** The user has a "Certificado de Multas de Tránsito no Pagadas" and wants to know which fines can be declared prescribed.

**Why it's useful:** Keeps only fines registered more than 1095 days ago, groups them by court and estimates the savings.

**Examples:**
• "Which of the fines in certificado-BBFC12.pdf are older than three years?"
• "How much could the owner save with the certificate in downloads/multas.pdf?"

**Common workflows:**
1. Validate → Analyze → Generate pack
2. Search directory → Batch analyze → Generate packs for accepted certificates

**Best practices:** Scanned certificates without a text layer are rejected; ask for the digital certificate instead.`

	CertificateValidateDescription = `Check that a file is a readable PDF and that it looks like a certificate of unpaid traffic fines.

**When to use:** Before analyzing a file of unknown origin.

**Why it's useful:** Separates broken PDFs from valid PDFs that are not fines certificates.

**Examples:**
• "Is upload-123.pdf a fines certificate?"

**Best practices:** A valid but unrecognized file is usually a different document, such as a receipt or a scanned image.`

	CertificateGeneratePackDescription = `Generate the filings pack for a certificate: one prescription petition per court, instructions and a summary workbook, zipped.

**When to use:** The analysis found eligible fines and the owner wants the documents to file.

**Why it's useful:** Produces ready-to-sign DOCX petitions citing artículo 24 of Ley 18.287, one per Juzgado de Policía Local.

**Examples:**
• "Generate the legal documents for certificado-BBFC12.pdf"

**Best practices:** The ZIP is written to the configured output directory; certificates without eligible fines produce no pack.`

	CertificateSearchDirectoryDescription = `Discover certificate PDFs in the configured directory with optional fuzzy file name search.

**When to use:** Need to find which certificates are available before analyzing them.

**Examples:**
• "List all certificates"
• "Find the certificate for plate BBFC12" (query: "BBFC12")

**Best practices:** Leave directory empty to search the default directory. Queries tolerate typos.`

	CertificateBatchAnalyzeDescription = `Analyze several certificates concurrently and summarize the results.

**When to use:** A fleet owner or office has many certificates to review at once.

**Why it's useful:** Runs analyses in parallel with bounded concurrency; one broken file does not stop the rest.

**Examples:**
• "Analyze every certificate in the directory and tell me the total savings"

**Best practices:** Combine with certificate_search_directory to build the list of paths.`

	CertificateServerInfoDescription = `Get server information, available tools, directory contents, and usage guidance.

**When to use:** At the start of a session to learn what the server can do and where it reads and writes files.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	CertificateAnalyze:         CertificateAnalyzeDescription,
	CertificateValidate:        CertificateValidateDescription,
	CertificateGeneratePack:    CertificateGeneratePackDescription,
	CertificateSearchDirectory: CertificateSearchDirectoryDescription,
	CertificateBatchAnalyze:    CertificateBatchAnalyzeDescription,
	CertificateServerInfo:      CertificateServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
