package httpapi

import "net/http"

// NewMux wires every API route. Handlers are plain structs built from Deps;
// methodMux does the per-route method dispatch.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Programs
	ph := ProgramsHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal, DeleteProgram: d.DeleteProgram}
	mux.HandleFunc("/programs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))
	mux.HandleFunc("/programs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    ph.GetByPath,    // /programs/{id}
		http.MethodDelete: ph.DeleteByPath, // /programs/{id}
	}))
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Seed,
	}))

	// Scholarship calculator
	sch := ScholarshipHandler{CfgVal: d.CfgVal, Scorer: d.Scorer}
	mux.HandleFunc("/scholarship/calculate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Calculate,
	}))

	// AI recommendations and advisory chat
	rh := RecommendHandler{DB: d.DB, CfgVal: d.CfgVal, Ranker: d.Ranker}
	mux.HandleFunc("/recommendations", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Recommend,
	}))
	chh := ChatHandler{Advisor: d.Advisor}
	mux.HandleFunc("/chat", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: chh.Chat,
	}))
	mux.HandleFunc("/chat/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: chh.Reset,
	}))

	// Saved programs
	svh := SavedHandler{DB: d.DB}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  svh.List,
		http.MethodPost: svh.Save,
	}))
	mux.HandleFunc("/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: svh.DeleteByPath, // /saved/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/gemini", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetGeminiKey,
	}))

	// Catalog import
	ih := ImportHandler{
		DB:           d.DB,
		CfgVal:       d.CfgVal,
		ImportStatus: d.ImportStatus,
		Hub:          d.Hub,
		Logger:       d.Logger,
		RunImport:    d.RunImport,
	}
	mux.HandleFunc("/import/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))
	mux.HandleFunc("/import/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health + maintenance
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	return mux
}
