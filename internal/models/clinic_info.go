package models

// Identidade visual da clínica. Documento único por usuária, gravado
// em users/{email}/config/clinicInfo.
type ClinicInfo struct {
	Name    string  `json:"name"`
	Tagline string  `json:"tagline"`
	Logo    *string `json:"logo"`
}

// DefaultClinicInfo é o estado exibido antes do primeiro salvamento.
func DefaultClinicInfo() ClinicInfo {
	return ClinicInfo{
		Name:    "D.LUMIÈRE",
		Tagline: "Esthétique de Luxe",
	}
}
