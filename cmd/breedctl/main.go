package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		baseURL = envOr("BREEDBOX_API_URL", "http://localhost:3000")
		out     = envOr("BREEDBOX_OUT", "text")
		timeout = 30 * time.Second
	)
	cl := &client{HTTP: &http.Client{Timeout: timeout}, Out: stdout}

	root := &cobra.Command{
		Use:           "breedctl",
		Short:         "CLI para el API de breedbox (razas y favoritos)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if out != "text" && out != "json" {
				return fmt.Errorf("--out inválido %q (json|text)", out)
			}
			cl.BaseURL = baseURL
			cl.OutFormat = out
			return nil
		},
	}
	root.SetOut(stdout)
	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base del API (env BREEDBOX_API_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text (env BREEDBOX_OUT)")

	// ping: GET /readyz
	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Chequea /readyz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call(cmd.Context(), http.MethodGet, "/readyz", nil)
			if err != nil {
				return err
			}
			if cl.OutFormat == "json" {
				var v any
				if err := json.Unmarshal(body, &v); err != nil {
					return err
				}
				return cl.printJSON(v)
			}
			fmt.Fprintln(cl.Out, "ok")
			return nil
		},
	}

	// breeds
	breedsCmd := &cobra.Command{Use: "breeds", Short: "Consultas de razas"}
	breedsListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todas las razas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call(cmd.Context(), http.MethodGet, "/api/breeds", nil)
			if err != nil {
				return err
			}
			return cl.printList(body)
		},
	}
	breedsImagesCmd := &cobra.Command{
		Use:   "images <breed> [quantity]",
		Short: "Imágenes aleatorias de una raza (quantity default 1)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return fmt.Errorf("quantity debe ser un entero positivo, got %q", args[1])
				}
				qty = n
			}
			path := fmt.Sprintf("/api/breeds/%s/images/%d", escape(args[0]), qty)
			body, err := cl.call(cmd.Context(), http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			return cl.printList(body)
		},
	}
	breedsCmd.AddCommand(breedsListCmd, breedsImagesCmd)

	// favorites
	favCmd := &cobra.Command{Use: "favorites", Short: "Gestión de favoritos"}
	favListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista favoritos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call(cmd.Context(), http.MethodGet, "/api/favorites", nil)
			if err != nil {
				return err
			}
			return cl.printList(body)
		},
	}
	favAddCmd := &cobra.Command{
		Use:   "add <breed>",
		Short: "Agrega una raza a favoritos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]string{"breed": args[0]})
			body, err := cl.call(cmd.Context(), http.MethodPost, "/api/favorites", b)
			if err != nil {
				return err
			}
			return cl.printMessage(body)
		},
	}
	favRemoveCmd := &cobra.Command{
		Use:   "remove <breed>",
		Short: "Quita una raza de favoritos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := cl.call(cmd.Context(), http.MethodDelete, "/api/favorites/"+escape(args[0]), nil)
			if err != nil {
				return err
			}
			return cl.printMessage(body)
		},
	}
	favCmd.AddCommand(favListCmd, favAddCmd, favRemoveCmd)

	root.AddCommand(pingCmd, breedsCmd, favCmd)
	return root
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
