package app

import "net/http"

// initRouter initializes the router of the App
func (s *App) initRouter() {
	s.router.PathPrefix("/static").Handler(s.views.GetStaticHandler())
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/browse/", http.StatusSeeOther)
	})
	s.router.HandleFunc("/browse", s.BrowseHandler)
	s.router.HandleFunc("/browse/{prefix:.*}", s.BrowseHandler)
	s.router.HandleFunc("/download", s.DownloadHandler)
	s.router.HandleFunc("/file/{id}", s.FileHandler)
	s.router.HandleFunc("/changes", s.ChangesHandler)
	s.router.HandleFunc("/status", s.StatusHandler)
	s.srv.Handler = s.router
}
