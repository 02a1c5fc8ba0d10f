package service

import "github.com/pharmetrics/askdb/internal/domain"

// DefaultSchemaChunks returns the built-in schema descriptions for the two
// analytics tables. They are embedded and stored on first startup and can
// be replaced later through the schema administration endpoints.
func DefaultSchemaChunks() []domain.SchemaChunk {
	return []domain.SchemaChunk{
		{
			ID: "HCP",
			Content: `TABLE: HCP
Description: Stores information about healthcare professionals (HCPs), including personal details, roles, and classifications.
Columns:
- id (INT, PRIMARY KEY): Unique identifier for the HCP.
- customerid (INT, UNIQUE): Unique customer reference ID.
- englishname (VARCHAR(255)): Full name of the HCP in English.
- isconsultant (BOOLEAN): Whether the HCP is a consultant.
- isdecisionmaker (BOOLEAN): Whether the HCP is a decision-maker.
- issamspeaker (BOOLEAN): Whether the HCP is a SAM speaker.
- isuniversitystaff (BOOLEAN): Whether the HCP is part of university staff.
- isampmspeaker (BOOLEAN): Whether the HCP is an AM/PM speaker.
- customerclassificationid (INT): ID representing the HCP's classification.
- CustomerClassification (VARCHAR(255)): Description of the classification.
- specialityid (INT): ID of the HCP's specialty.
- Speciality (VARCHAR(255)): Name of the specialty.
- countryid (INT): ID of the country where the HCP is located.
- Country (VARCHAR(255)): Name of the country.
Relationships:
- Referenced by MedicalReps.HCPId (foreign key) — links a medical representative's interaction to a specific HCP.`,
		},
		{
			ID: "MedicalReps",
			Content: `TABLE: MedicalReps
Description: Records medical representatives' interactions with healthcare professionals, including meeting details, status, and business line.
Columns:
- MRId (INT, PRIMARY KEY): Unique identifier for the medical representative.
- MRArFullName (VARCHAR(255)): Full name of the medical representative (Arabic).
- InteractionId (INT): ID of the interaction.
- InteractionStatusId (INT): Numeric status code of the interaction.
- InteractionStatus (VARCHAR(255)): Description of the interaction status.
- reportdate (DATE): Date of the interaction report.
- lineid (INT): ID of the medical line involved in the interaction.
- LineName (VARCHAR(255)): Name of the medical line.
- businessUnitId (INT): ID of the business unit.
- BusinessUnitName (VARCHAR(255)): Name of the business unit.
- HCPId (INT): Foreign key referencing the HCP.id column.
- HCPCustomerId (INT): Customer ID of the HCP involved.
- HCPEnglishName (VARCHAR(255)): English name of the HCP involved.
- HCPArabicName (VARCHAR(255)): Arabic name of the HCP involved.
- SpecialtyId (INT): ID of the HCP's specialty.
- Specialty (VARCHAR(255)): Name of the HCP's specialty.
Relationships:
- Foreign key (HCPId) references HCP.id — associates a medical representative with a specific healthcare professional.`,
		},
	}
}
