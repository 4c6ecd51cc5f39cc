package main

import (
	"context"
	"log"
	"os"

	"campuschat/internal/stores/database"
	"campuschat/internal/stores/knowledge"
	"campuschat/pkg/utils"
)

// Seed the knowledge base with bilingual sample FAQs so the chatbot can
// answer common questions before any documents are ingested
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Open the relational database
	db, err := database.Open(cfg.GetWithDefault("DATABASE_URL", "sqlite:///site.db"))
	if err != nil {
		log.Fatalf("[POPULATE]: Failed to open database: %v", err)
	}

	store, err := knowledge.NewStore(db)
	if err != nil {
		log.Fatalf("[POPULATE]: Failed to initialize knowledge store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.SaveFAQs(ctx, sampleFAQs()); err != nil {
		log.Fatalf("[POPULATE]: Failed to seed knowledge base: %v", err)
	}

	stats, err := store.GetStatistics(ctx)
	if err != nil {
		log.Fatalf("[POPULATE]: Failed to read back statistics: %v", err)
	}

	log.Printf("[POPULATE]: Knowledge base now holds %d FAQs across %d categories", stats.TotalFAQs, len(stats.Categories))
}

func sampleFAQs() []*knowledge.FAQ {
	source := "sample_data"

	english := []*knowledge.FAQ{
		{
			Question: "What are the college fees for B.A.?",
			Answer:   "The annual fee for B.A. is Rs. 15,000 including tuition and examination fees. Payment can be made in two installments.",
			Category: "fees",
		},
		{
			Question: "What is the fee for B.Sc.?",
			Answer:   "The annual fee for B.Sc. is Rs. 18,000 including tuition, laboratory, and examination fees.",
			Category: "fees",
		},
		{
			Question: "How can I pay my fees?",
			Answer:   "Fees can be paid online through the student portal, or at the accounts office by demand draft. Keep the receipt for your records.",
			Category: "fees",
		},
		{
			Question: "What scholarships are available?",
			Answer:   "Merit scholarships, need-based financial aid, and government scholarships for SC/ST/OBC students are available. Applications open at the start of each academic year.",
			Category: "scholarship",
		},
		{
			Question: "How do I apply for a scholarship?",
			Answer:   "Submit the scholarship application form to the student welfare office with your mark sheets and income certificate before the announced deadline.",
			Category: "scholarship",
		},
		{
			Question: "What are the library timings?",
			Answer:   "The library is open Monday to Saturday from 8:00 AM to 8:00 PM. During examinations it stays open until 10:00 PM.",
			Category: "library",
		},
		{
			Question: "How many books can I borrow from the library?",
			Answer:   "Undergraduate students can borrow up to 3 books for 14 days. Postgraduate students can borrow up to 5 books.",
			Category: "library",
		},
	}

	hindi := []*knowledge.FAQ{
		{
			Question: "बी.ए. की फीस कितनी है?",
			Answer:   "बी.ए. की वार्षिक फीस रु. 15,000 है जिसमें शिक्षण और परीक्षा शुल्क शामिल है। भुगतान दो किस्तों में किया जा सकता है।",
			Category: "fees",
			Language: "hi",
		},
		{
			Question: "छात्रवृत्ति के लिए आवेदन कैसे करें?",
			Answer:   "छात्रवृत्ति आवेदन पत्र अपनी अंकतालिका और आय प्रमाण पत्र के साथ छात्र कल्याण कार्यालय में जमा करें।",
			Category: "scholarship",
			Language: "hi",
		},
		{
			Question: "पुस्तकालय का समय क्या है?",
			Answer:   "पुस्तकालय सोमवार से शनिवार सुबह 8 बजे से रात 8 बजे तक खुला रहता है। परीक्षा के दौरान यह रात 10 बजे तक खुला रहता है।",
			Category: "library",
			Language: "hi",
		},
	}

	faqs := make([]*knowledge.FAQ, 0, len(english)+len(hindi))
	for _, faq := range english {
		faq.Language = "en"
		faq.SourceFile = source
		faqs = append(faqs, faq)
	}
	for _, faq := range hindi {
		faq.SourceFile = source
		faqs = append(faqs, faq)
	}

	return faqs
}
